package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/gitinfo"
	"git.home.luguber.info/inful/docsite/internal/label"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force   bool   `help:"Overwrite an existing configuration file"`
	FromGit string `name:"from-git" help:"Take site, base, social and edit link from the git remote of this checkout" placeholder:"DIR" type:"existingdir"`
	DocsDir string `name:"docs-dir" help:"Directory holding the documentation sources, used for edit links" default:"docs"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	var seed *site.Config
	if i.FromGit != "" {
		remote, err := gitinfo.FromRepo(i.FromGit)
		if err != nil {
			return err
		}
		seed = site.Example()
		seed.Title = label.FromLink(remote.Repo)
		seed.Social = nil
		remote.Apply(seed, i.DocsDir)
	}

	f, err := config.Init(root.Config, i.Force, seed)
	if err != nil {
		return err
	}
	_, _ = successPrinter.Fprintf(g.Out, "Wrote %s\n", root.Config)
	_, _ = fmt.Fprintf(g.Out, "  site: %s%s\n", f.Site, f.Base)
	_, _ = fmt.Fprintf(g.Out, "  %d sidebar groups, %d integrations\n", len(f.Sidebar), len(f.Integrations))
	return nil
}
