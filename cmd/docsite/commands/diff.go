package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/diff"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// DiffCmd implements the 'diff' command.
type DiffCmd struct {
	Variant []string `help:"Variant to compare; once against the base configuration, twice against each other"`
	Against string   `help:"Compare with another configuration file" type:"existingfile" placeholder:"FILE"`
}

func (d *DiffCmd) Run(g *Global, root *CLI) error {
	a, b, err := d.sides(root.Config)
	if err != nil {
		return err
	}
	res, err := diff.Compare(a, b)
	if err != nil {
		return err
	}
	if res.Empty() {
		_, _ = successPrinter.Fprintln(g.Out, "no differences")
		return nil
	}
	_, _ = fmt.Fprint(g.Out, res.Render())
	return nil
}

func (d *DiffCmd) sides(path string) (*site.Config, *site.Config, error) {
	if d.Against != "" {
		if len(d.Variant) > 1 {
			return nil, nil, derrors.ValidationError("--against takes at most one --variant").Build()
		}
		name := ""
		if len(d.Variant) == 1 {
			name = d.Variant[0]
		}
		a, err := resolve(path, name)
		if err != nil {
			return nil, nil, err
		}
		b, err := resolve(d.Against, name)
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}

	switch len(d.Variant) {
	case 1:
		f, err := load(path)
		if err != nil {
			return nil, nil, err
		}
		b, err := f.Resolve(d.Variant[0])
		if err != nil {
			return nil, nil, err
		}
		return &f.Config, b, nil
	case 2:
		f, err := load(path)
		if err != nil {
			return nil, nil, err
		}
		a, err := f.Resolve(d.Variant[0])
		if err != nil {
			return nil, nil, err
		}
		b, err := f.Resolve(d.Variant[1])
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}
	return nil, nil, derrors.ValidationError("diff needs --against FILE or one or two --variant flags").Build()
}
