package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// HCL layout:
//
//	version = "1"
//	title   = "Docs"
//	social  = { github = "https://github.com/example/docs" }
//
//	group "Getting Started" {
//	  item "Introduction" { link = "/" }
//	}
//
//	integration "starlight" {
//	  options = { customCss = ["./src/custom.css"] }
//	}
//
//	variant "staging" { base = "/", link_style = "absolute" }
type hclFile struct {
	Version       string            `hcl:"version,optional"`
	Title         string            `hcl:"title,optional"`
	Description   string            `hcl:"description,optional"`
	Site          string            `hcl:"site,optional"`
	Base          string            `hcl:"base,optional"`
	TrailingSlash string            `hcl:"trailing_slash,optional"`
	Locale        string            `hcl:"locale,optional"`
	Social        map[string]string `hcl:"social,optional"`
	EditLink      *hclEditLink      `hcl:"edit_link,block"`
	Groups        []hclGroup        `hcl:"group,block"`
	Integrations  []hclIntegration  `hcl:"integration,block"`
	Variants      []hclVariant      `hcl:"variant,block"`
}

type hclEditLink struct {
	BaseURL string `hcl:"base_url"`
}

type hclGroup struct {
	Label     string    `hcl:"label,label"`
	Collapsed bool      `hcl:"collapsed,optional"`
	Items     []hclItem `hcl:"item,block"`
}

type hclItem struct {
	Label string `hcl:"label,label"`
	Link  string `hcl:"link,optional"`
	URL   string `hcl:"url,optional"`
	Badge string `hcl:"badge,optional"`
}

type hclIntegration struct {
	Name    string    `hcl:"name,label"`
	Options cty.Value `hcl:"options,optional"`
}

type hclVariant struct {
	Name          string            `hcl:"name,label"`
	Site          string            `hcl:"site,optional"`
	Base          string            `hcl:"base,optional"`
	TrailingSlash string            `hcl:"trailing_slash,optional"`
	LinkStyle     string            `hcl:"link_style,optional"`
	Social        map[string]string `hcl:"social,optional"`
}

func decodeHCL(data []byte, name string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse HCL: %w", diags)
	}

	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, envEvalContext(), &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decode HCL: %w", diags)
	}

	f := &File{
		Version: raw.Version,
		Config: site.Config{
			Title:         raw.Title,
			Description:   raw.Description,
			Site:          raw.Site,
			Base:          raw.Base,
			TrailingSlash: site.TrailingSlash(raw.TrailingSlash),
			Locale:        raw.Locale,
			Social:        raw.Social,
		},
	}
	if raw.EditLink != nil {
		f.EditLink = &site.EditLink{BaseURL: raw.EditLink.BaseURL}
	}
	for _, g := range raw.Groups {
		group := site.Group{Label: g.Label, Collapsed: g.Collapsed}
		for _, it := range g.Items {
			group.Items = append(group.Items, site.Item(it))
		}
		f.Sidebar = append(f.Sidebar, group)
	}
	for _, in := range raw.Integrations {
		opts, err := ctyToMap(in.Options)
		if err != nil {
			return nil, fmt.Errorf("integration %q options: %w", in.Name, err)
		}
		f.Integrations = append(f.Integrations, site.Integration{Name: in.Name, Options: opts})
	}
	for _, v := range raw.Variants {
		if f.Variants == nil {
			f.Variants = map[string]site.VariantSpec{}
		}
		if _, dup := f.Variants[v.Name]; dup {
			return nil, fmt.Errorf("variant %q declared twice", v.Name)
		}
		f.Variants[v.Name] = site.VariantSpec{
			Site:          v.Site,
			Base:          v.Base,
			TrailingSlash: site.TrailingSlash(v.TrailingSlash),
			LinkStyle:     site.LinkStyle(v.LinkStyle),
			Social:        v.Social,
		}
	}
	return f, nil
}

// envEvalContext exposes the process environment as the env object.
func envEvalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclIdentifier(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)}}
}

func hclIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// ctyToMap converts an object or map value into plain Go values through JSON.
func ctyToMap(v cty.Value) (map[string]any, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("options must be an object, got %s", ty.FriendlyName())
	}
	data, err := ctyjson.Marshal(v, ty)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	plainNumbers(out)
	return out, nil
}
