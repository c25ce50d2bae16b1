package main

import (
	"fmt"
	"io"
	"os"

	"github.com/toon-format/go-toon/parse"
)

// forEachInput parses each named file, or stdin when files is empty,
// and hands the result to fn. "-" names stdin.
func forEachInput(cfg *MainConfig, files []string, fn func(name string, res *parse.Result) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		res, err := parseFile(cfg, file)
		if err != nil {
			return err
		}
		if err := fn(displayName(file), res); err != nil {
			return err
		}
	}
	return nil
}

func parseFile(cfg *MainConfig, file string) (*parse.Result, error) {
	in, err := readInput(file)
	if err != nil {
		return nil, err
	}
	res, err := parse.Parse(in, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", displayName(file), err)
	}
	return res, nil
}

func readInput(file string) ([]byte, error) {
	if file == "-" {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		if in == nil {
			in = []byte{}
		}
		return in, nil
	}
	in, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return in, nil
}

func displayName(file string) string {
	if file == "-" {
		return "(stdin)"
	}
	return file
}
