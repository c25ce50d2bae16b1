package main

import (
	"fmt"

	"github.com/toon-format/go-toon/encode"
	"github.com/toon-format/go-toon/ir"
	"github.com/toon-format/go-toon/parse"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path", cli.ErrUsage)
	}
	path := args[0]
	var prg *vm.Program
	if cfg.Where != "" {
		prg, err = expr.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: bad -where expression: %v", cli.ErrUsage, err)
		}
	}
	return forEachInput(cfg.MainConfig, args[1:], func(name string, res *parse.Result) error {
		node, ok := ir.FindPath(res.Doc, path)
		if !ok {
			return fmt.Errorf("%s: no element at %q", name, path)
		}
		if prg != nil {
			node, err = filterNode(node, prg)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...)
	})
}

// filterNode keeps the elements of an array or table for which the
// expression evaluates to true. Each element is the expression's
// environment; scalar elements are bound to "value". An element the
// expression cannot evaluate against is dropped.
func filterNode(node *ir.Node, prg *vm.Program) (*ir.Node, error) {
	items, ok := ir.ToAny(node).([]any)
	if !ok {
		return nil, fmt.Errorf("-where requires an array or table element")
	}
	kept := []any{}
	for _, item := range items {
		env, ok := item.(map[string]any)
		if !ok {
			env = map[string]any{"value": item}
		}
		out, err := expr.Run(prg, env)
		if err != nil {
			continue
		}
		if b, ok := out.(bool); ok && b {
			kept = append(kept, item)
		}
	}
	return ir.FromAny(kept), nil
}
