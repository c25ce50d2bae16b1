package main

import (
	"github.com/toon-format/go-toon/encode"
	"github.com/toon-format/go-toon/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return forEachInput(cfg.MainConfig, args, func(name string, res *parse.Result) error {
		return encode.Encode(res.Doc, cc.Out, cfg.encOpts(cc.Out)...)
	})
}
