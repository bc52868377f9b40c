// Package mdx enables MDX pages in Astro.
package mdx

import (
	"git.home.luguber.info/inful/docsite/internal/integration"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Name is the configuration name of the integration.
const Name = "mdx"

type Plugin struct{}

func (Plugin) Name() string       { return Name }
func (Plugin) Module() string     { return "@astrojs/mdx" }
func (Plugin) ImportName() string { return "mdx" }

func (Plugin) Defaults(_ *site.Config, opts map[string]any) map[string]any { return opts }

func (Plugin) Check(opts map[string]any) []string {
	if v, ok := opts["optimize"]; ok {
		switch v.(type) {
		case bool, map[string]any:
		default:
			return []string{"mdx option optimize must be a boolean or an object"}
		}
	}
	return nil
}

func (p Plugin) Call(cfg *site.Config, opts map[string]any) (string, error) {
	return integration.CallExpr(p.ImportName(), p.Defaults(cfg, opts))
}

func init() { integration.Register(Plugin{}) }
