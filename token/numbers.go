package token

// IsNumber classifies d as a numeric literal, returning the bytes
// consumed, whether the literal has a fraction or exponent, and whether
// it carries a forbidden leading zero. d is a number exactly when the
// consumed count equals len(d).
func IsNumber(d []byte) (n int, isFloat, leadingZero bool) {
	return number(d)
}

// number classifies d as a numeric literal. It returns the number of
// bytes consumed, whether the literal has a fraction or exponent, and
// whether it carries a forbidden leading zero. A zero return means d is
// not a number at all.
func number(d []byte) (n int, isFloat, leadingZero bool) {
	i := 0
	if i < len(d) && d[i] == '-' {
		i++
	}
	digits := asciiDigits(d[i:])
	if digits == 0 {
		return 0, false, false
	}
	f := fract(d[i+digits:])
	e := exp(d[i+digits+f:])
	if digits > 1 && d[i] == '0' {
		leadingZero = true
	}
	return i + digits + f + e, f+e != 0, leadingZero
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	}
	if i == len(d) {
		return 0
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0
	}
	return n + i
}

func fract(d []byte) int {
	if len(d) == 0 || d[0] != '.' {
		return 0
	}
	n := asciiDigits(d[1:])
	if n == 0 {
		// . must be followed by 1 or more digits rfc 7159
		return 0
	}
	return n + 1
}
