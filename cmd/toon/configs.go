package main

import (
	"fmt"
	"io"
	"os"

	"github.com/toon-format/go-toon/encode"
	"github.com/toon-format/go-toon/format"
	"github.com/toon-format/go-toon/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	T bool `cli:"name=t aliases=toon desc='output in toon'"`
	J bool `cli:"name=j aliases=json desc='output in json'"`
	Y bool `cli:"name=y aliases=yaml desc='output in yaml'"`

	Pipe bool `cli:"name=pipe desc='encode inline values pipe delimited'"`
	Tab  bool `cli:"name=tab desc='encode inline values tab delimited'"`

	Unlimited bool `cli:"name=unlimited desc='parse without resource limits'"`
	MaxDepth  int  `cli:"name=maxDepth desc='override the nesting depth limit'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	limits := parse.DefaultLimits()
	if cfg.Unlimited {
		limits = parse.UnlimitedLimits()
	}
	if cfg.MaxDepth > 0 {
		limits.MaxNestingDepth = cfg.MaxDepth
	}
	return []parse.ParseOption{parse.WithLimits(limits)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmat format.Format
	switch {
	case cfg.T:
		fmat = format.ToonFormat
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
	}
	switch {
	case cfg.Pipe:
		res = append(res, encode.Delimiter('|'))
	case cfg.Tab:
		res = append(res, encode.Delimiter('\t'))
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type CheckConfig struct {
	*MainConfig

	Quiet  bool `cli:"name=q desc='suppress listing, set exit status only'"`
	Tokens bool `cli:"name=tokens desc='include the token count per file'"`

	Check *cli.Command
}

type ViewConfig struct {
	*MainConfig

	Check *cli.Command
	View  *cli.Command
}

type TokensConfig struct {
	*MainConfig
	Tokens *cli.Command
}

type GetConfig struct {
	*MainConfig

	Where string `cli:"name=where desc='filter array or table elements with an expression'"`

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}
