package main

import (
	"fmt"

	"github.com/toon-format/go-toon/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	total := 0
	err = forEachInput(cfg.MainConfig, args, func(name string, res *parse.Result) error {
		total += len(res.Errors)
		if cfg.Quiet {
			return nil
		}
		for _, e := range res.Errors {
			fmt.Fprintf(cc.Out, "%s:%d:%d: %s: %s\n",
				name, e.Line+1, e.Col+1, e.Code, e.Message)
		}
		if cfg.Tokens {
			fmt.Fprintf(cc.Out, "%s: %d tokens, %d problems\n",
				name, len(res.Tokens), len(res.Errors))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if total > 0 {
		return fmt.Errorf("%d problems", total)
	}
	return nil
}
