package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/integration/mdx"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Hugo emits hugo.yaml with the sidebar as the "sidebar" menu.
type Hugo struct{}

func (Hugo) Name() string     { return HugoTarget }
func (Hugo) FileName() string { return "hugo.yaml" }

func (Hugo) Render(cfg *site.Config) ([]byte, error) {
	params := map[string]any{}
	root := map[string]any{
		"title":   cfg.Title,
		"baseURL": BaseURL(cfg),
		"params":  params,
	}
	if cfg.Description != "" {
		params["description"] = cfg.Description
	}
	if cfg.Locale != "" {
		root["languageCode"] = cfg.Locale
	}
	if cfg.TrailingSlash == site.TrailingSlashNever {
		root["uglyURLs"] = true
	}
	if len(cfg.Social) > 0 {
		params["social"] = cfg.Social
	}
	if cfg.EditLink != nil {
		params["editURL"] = map[string]any{"enable": true, "base": cfg.EditLink.BaseURL}
	}
	if menu := hugoSidebarMenu(cfg.Sidebar); len(menu) > 0 {
		root["menu"] = map[string]any{"sidebar": menu}
	}
	for _, in := range cfg.Integrations {
		if in.Name == mdx.Name {
			root["markup"] = map[string]any{
				"goldmark": map[string]any{"renderer": map[string]any{"unsafe": true}},
			}
		}
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to marshal Hugo config").Build()
	}
	return data, nil
}

// hugoSidebarMenu flattens groups into parent entries and items into
// children. Weights follow declaration order.
func hugoSidebarMenu(groups []site.Group) []map[string]any {
	var menu []map[string]any
	for gi, g := range groups {
		id := fmt.Sprintf("sidebar-%d", gi)
		menu = append(menu, map[string]any{
			"identifier": id,
			"name":       g.Label,
			"weight":     gi + 1,
		})
		for ii, it := range g.Items {
			entry := map[string]any{
				"name":   it.Label,
				"url":    it.Target(),
				"parent": id,
				"weight": ii + 1,
			}
			p := map[string]any{}
			if it.External() {
				p["external"] = true
			}
			if it.Badge != "" {
				p["badge"] = it.Badge
			}
			if len(p) > 0 {
				entry["params"] = p
			}
			menu = append(menu, entry)
		}
	}
	return menu
}

// BaseURL joins the site URL and base path with a trailing slash, the form
// Hugo expects.
func BaseURL(cfg *site.Config) string {
	return strings.TrimSuffix(cfg.Site, "/") + strings.TrimSuffix(cfg.Base, "/") + "/"
}
