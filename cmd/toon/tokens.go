package main

import (
	"fmt"

	"github.com/toon-format/go-toon/parse"

	"github.com/scott-cotton/cli"
)

func tokens(cfg *TokensConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tokens.Parse(cc, args)
	if err != nil {
		return err
	}
	return forEachInput(cfg.MainConfig, args, func(name string, res *parse.Result) error {
		for i := range res.Tokens {
			t := &res.Tokens[i]
			fmt.Fprintf(cc.Out, "%s\t%s\t%q\n", t.Pos, t.Type, t.Bytes)
		}
		return nil
	})
}
