package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// VariantsCmd implements the 'variants' command.
type VariantsCmd struct{}

func (v *VariantsCmd) Run(g *Global, root *CLI) error {
	f, err := load(root.Config)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(g.Out)
	t.AppendHeader(table.Row{"Variant", "Site", "Base", "Trailing slash", "Link style"})
	t.AppendRow(table.Row{faint("(base)"), f.Site, f.Base, f.TrailingSlash, site.LinkStyleRoot})
	for _, name := range f.VariantNames() {
		cfg, err := f.Resolve(name)
		if err != nil {
			return err
		}
		style := f.Variants[name].LinkStyle
		if style == "" {
			style = site.LinkStyleRoot
		}
		t.AppendRow(table.Row{name, cfg.Site, cfg.Base, cfg.TrailingSlash, style})
	}
	t.Render()
	return nil
}
