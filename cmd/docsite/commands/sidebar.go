package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/xlab/treeprint"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/label"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// SidebarCmd groups the sidebar subcommands.
type SidebarCmd struct {
	Show  SidebarShowCmd  `cmd:"" default:"1" help:"Print the sidebar as a tree"`
	Links SidebarLinksCmd `cmd:"" help:"List every sidebar entry in a table"`
	Add   SidebarAddCmd   `cmd:"" help:"Add an entry to a sidebar group"`
}

// SidebarShowCmd implements 'sidebar show'.
type SidebarShowCmd struct {
	Variant string `help:"Show the sidebar as rewritten for this variant"`
}

func (s *SidebarShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := resolve(root.Config, s.Variant)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(g.Out, sidebarTree(cfg).String())
	return nil
}

func sidebarTree(cfg *site.Config) treeprint.Tree {
	tree := treeprint.NewWithRoot(cfg.Title)
	for _, grp := range cfg.Sidebar {
		name := grp.Label
		if grp.Collapsed {
			name += " " + faint("(collapsed)")
		}
		branch := tree.AddBranch(name)
		for _, it := range grp.Items {
			entry := it.Label + " " + faint(it.Target())
			if it.Badge != "" {
				entry += " [" + it.Badge + "]"
			}
			branch.AddNode(entry)
		}
	}
	return tree
}

// SidebarLinksCmd implements 'sidebar links'.
type SidebarLinksCmd struct {
	Variant string `help:"List links as rewritten for this variant"`
}

func (s *SidebarLinksCmd) Run(g *Global, root *CLI) error {
	cfg, err := resolve(root.Config, s.Variant)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(g.Out)
	t.AppendHeader(table.Row{"Group", "Label", "Target", "Kind", "Badge"})
	t.AppendRows(linkRows(cfg.Sidebar))
	t.Render()
	return nil
}

func linkRows(groups []site.Group) []table.Row {
	return lo.FlatMap(groups, func(grp site.Group, _ int) []table.Row {
		return lo.Map(grp.Items, func(it site.Item, _ int) table.Row {
			kind := "internal"
			if it.External() {
				kind = "external"
			}
			return table.Row{grp.Label, it.Label, it.Target(), kind, it.Badge}
		})
	})
}

// SidebarAddCmd implements 'sidebar add'.
type SidebarAddCmd struct {
	Group string `required:"" help:"Group label; a new group is appended when none matches"`
	Link  string `required:"" help:"Internal link, or an absolute http(s) URL for an external entry"`
	Label string `help:"Entry label; derived from the link when empty"`
	Badge string `help:"Badge text shown next to the entry"`
}

func (s *SidebarAddCmd) Run(g *Global, root *CLI) error {
	var added site.Item
	_, err := config.Edit(root.Config, func(f *config.File) error {
		added = s.item(f.Locale)
		group := config.EscapeLiteral(strings.TrimSpace(s.Group))
		idx := lo.IndexOf(lo.Map(f.Sidebar, func(grp site.Group, _ int) string {
			return strings.ToLower(grp.Label)
		}), strings.ToLower(group))
		if idx < 0 {
			f.Sidebar = append(f.Sidebar, site.Group{Label: group})
			idx = len(f.Sidebar) - 1
		}
		raw := added
		raw.Label = config.EscapeLiteral(raw.Label)
		raw.Link = config.EscapeLiteral(raw.Link)
		raw.URL = config.EscapeLiteral(raw.URL)
		raw.Badge = config.EscapeLiteral(raw.Badge)
		f.Sidebar[idx].Items = append(f.Sidebar[idx].Items, raw)
		return nil
	})
	if err != nil {
		return err
	}
	_, _ = successPrinter.Fprint(g.Out, "added")
	_, _ = fmt.Fprintf(g.Out, " %q -> %s to %q\n", added.Label, added.Target(), s.Group)
	return nil
}

func (s *SidebarAddCmd) item(locale string) site.Item {
	target := strings.TrimSpace(s.Link)
	it := site.Item{Label: strings.TrimSpace(s.Label), Badge: s.Badge}
	if site.IsAbsoluteHTTP(target) {
		it.URL = target
	} else {
		it.Link = target
	}
	if it.Label == "" {
		tag, err := language.Parse(locale)
		if err != nil {
			tag = language.English
		}
		it.Label = label.FromLinkIn(target, tag)
	}
	return it
}
