package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/toon-format/go-toon/encode"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two files", cli.ErrUsage)
	}
	a, b := args[0], args[1]
	if cfg.Reverse {
		a, b = b, a
	}
	aText, err := canonical(cfg.MainConfig, a)
	if err != nil {
		return err
	}
	bText, err := canonical(cfg.MainConfig, b)
	if err != nil {
		return err
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(aText, bText, true)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	if cfg.Color {
		fmt.Fprint(cc.Out, diffCfg.DiffPrettyText(diffs))
		return diffStatus(diffs)
	}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			printPrefixed(cc, "+", d.Text)
		case diffpatch.DiffDelete:
			printPrefixed(cc, "-", d.Text)
		case diffpatch.DiffEqual:
			printPrefixed(cc, " ", d.Text)
		}
	}
	return diffStatus(diffs)
}

// canonical re-encodes a document with default options so the diff
// reflects content, not layout.
func canonical(cfg *MainConfig, file string) (string, error) {
	res, err := parseFile(cfg, file)
	if err != nil {
		return "", err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(res.Doc, buf); err != nil {
		return "", fmt.Errorf("error encoding %s: %w", displayName(file), err)
	}
	return buf.String(), nil
}

func printPrefixed(cc *cli.Context, prefix, text string) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for _, ln := range lines {
		fmt.Fprintf(cc.Out, "%s%s\n", prefix, ln)
	}
}

func diffStatus(diffs []diffpatch.Diff) error {
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			return fmt.Errorf("documents differ")
		}
	}
	return nil
}
