package main

import (
	"encoding/json"
	"fmt"

	"github.com/toon-format/go-toon/encode"
	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	patchJSON, err := patchArg(cfg, args[0])
	if err != nil {
		return err
	}
	return forEachInput(cfg.MainConfig, args[1:], func(name string, res *parse.Result) error {
		docJSON, err := json.Marshal(ir.ToAny(res.Doc))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out, err := jsonpatch.MergePatch(docJSON, patchJSON)
		if err != nil {
			return fmt.Errorf("%s: applying patch: %w", name, err)
		}
		var v any
		if err := json.Unmarshal(out, &v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return encode.Encode(ir.FromAny(v), cc.Out, cfg.encOpts(cc.Out)...)
	})
}

// patchArg reads the patch either as a literal TOON string or as a
// file, and renders it as a JSON merge patch.
func patchArg(cfg *PatchConfig, arg string) ([]byte, error) {
	var (
		in  []byte
		err error
	)
	if cfg.String {
		in = []byte(arg)
	} else {
		in, err = readInput(arg)
		if err != nil {
			return nil, err
		}
	}
	res, err := parse.Parse(in, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error parsing patch: %w", err)
	}
	if !res.IsSuccess() {
		e := res.Errors[0]
		return nil, fmt.Errorf("bad patch at %d:%d: %s", e.Line+1, e.Col+1, e.Message)
	}
	return json.Marshal(ir.ToAny(res.Doc))
}
