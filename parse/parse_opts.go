package parse

import "github.com/toon-format/go-toon/token"

type parseOpts struct {
	limits Limits
}

type ParseOption func(*parseOpts)

// WithLimits replaces the default resource limits.
func WithLimits(l Limits) ParseOption {
	return func(o *parseOpts) { o.limits = l }
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{limits: DefaultLimits()}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

func (o *parseOpts) tokenOpts() []token.TokenOpt {
	return []token.TokenOpt{
		token.MaxTokens(o.limits.MaxTokenCount),
		token.MaxStringLen(o.limits.MaxStringLength),
	}
}
