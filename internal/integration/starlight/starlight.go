// Package starlight configures the Starlight documentation theme for Astro.
// Site settings, the sidebar and social links flow into the starlight()
// call; options given in the configuration file override them key by key.
package starlight

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/integration"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Name is the configuration name of the integration.
const Name = "starlight"

type Plugin struct{}

func (Plugin) Name() string       { return Name }
func (Plugin) Module() string     { return "@astrojs/starlight" }
func (Plugin) ImportName() string { return "starlight" }

// Defaults derives starlight options from cfg and overlays opts.
func (Plugin) Defaults(cfg *site.Config, opts map[string]any) map[string]any {
	derived := map[string]any{"title": cfg.Title}
	if cfg.Description != "" {
		derived["description"] = cfg.Description
	}
	if len(cfg.Social) > 0 {
		social := make(map[string]any, len(cfg.Social))
		for k, v := range cfg.Social {
			social[k] = v
		}
		derived["social"] = social
	}
	if len(cfg.Sidebar) > 0 {
		derived["sidebar"] = Sidebar(cfg.Sidebar)
	}
	if cfg.EditLink != nil && cfg.EditLink.BaseURL != "" {
		derived["editLink"] = map[string]any{"baseUrl": cfg.EditLink.BaseURL}
	}
	if cfg.Locale != "" {
		derived["defaultLocale"] = cfg.Locale
	}
	return integration.Merge(derived, opts)
}

// Sidebar converts groups to starlight sidebar entries. External items use
// their URL as the link; starlight treats absolute links as external.
func Sidebar(groups []site.Group) []any {
	out := make([]any, 0, len(groups))
	for _, g := range groups {
		items := make([]any, 0, len(g.Items))
		for _, it := range g.Items {
			entry := map[string]any{"label": it.Label, "link": it.Target()}
			if it.Badge != "" {
				entry["badge"] = it.Badge
			}
			if it.External() {
				entry["attrs"] = map[string]any{"target": "_blank", "rel": "noopener"}
			}
			items = append(items, entry)
		}
		group := map[string]any{"label": g.Label, "items": items}
		if g.Collapsed {
			group["collapsed"] = true
		}
		out = append(out, group)
	}
	return out
}

var optionKinds = map[string]string{
	"title":         "string",
	"description":   "string",
	"defaultLocale": "string",
	"customCss":     "list of strings",
	"sidebar":       "list",
	"social":        "object",
	"editLink":      "object",
	"locales":       "object",
	"pagination":    "boolean",
	"lastUpdated":   "boolean",
}

// Check verifies the types of well-known options. Unknown keys pass
// through since starlight validates its own schema.
func (Plugin) Check(opts map[string]any) []string {
	var problems []string
	for _, k := range site.SortedKeys(opts) {
		want, ok := optionKinds[k]
		if !ok || matches(want, opts[k]) {
			continue
		}
		problems = append(problems, fmt.Sprintf("starlight option %s must be a %s, got %T", k, want, opts[k]))
	}
	return problems
}

func matches(kind string, v any) bool {
	switch kind {
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "list":
		_, ok := v.([]any)
		return ok
	case "list of strings":
		list, ok := v.([]any)
		if !ok {
			return false
		}
		for _, e := range list {
			if _, ok := e.(string); !ok {
				return false
			}
		}
		return true
	}
	return true
}

func (p Plugin) Call(cfg *site.Config, opts map[string]any) (string, error) {
	return integration.CallExpr(p.ImportName(), p.Defaults(cfg, opts))
}

func init() { integration.Register(Plugin{}) }
