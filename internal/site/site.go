// Package site models the configuration value handed to the external
// documentation framework: site settings, the sidebar tree, social links and
// the ordered list of integrations.
package site

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"maps"

	"github.com/invopop/jsonschema"
)

// TrailingSlash controls whether generated URLs end with "/".
type TrailingSlash string

const (
	TrailingSlashAlways TrailingSlash = "always"
	TrailingSlashNever  TrailingSlash = "never"
	TrailingSlashIgnore TrailingSlash = "ignore"
)

// Valid reports whether ts is one of the known policies. Empty is valid and
// means the framework default (ignore).
func (ts TrailingSlash) Valid() bool {
	switch ts {
	case "", TrailingSlashAlways, TrailingSlashNever, TrailingSlashIgnore:
		return true
	}
	return false
}

// Config is the site configuration value.
type Config struct {
	Title         string            `yaml:"title" json:"title" jsonschema:"minLength=1,description=Site title shown in the header and page titles"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	Site          string            `yaml:"site,omitempty" json:"site,omitempty" jsonschema:"format=uri,description=Absolute URL the site is deployed to"`
	Base          string            `yaml:"base,omitempty" json:"base,omitempty" jsonschema:"pattern=^/,description=URL path prefix the site is served under"`
	TrailingSlash TrailingSlash     `yaml:"trailing_slash,omitempty" json:"trailing_slash,omitempty" jsonschema:"enum=always,enum=never,enum=ignore"`
	Locale        string            `yaml:"locale,omitempty" json:"locale,omitempty" jsonschema:"description=BCP 47 tag of the default locale"`
	EditLink      *EditLink         `yaml:"edit_link,omitempty" json:"edit_link,omitempty"`
	Social        map[string]string `yaml:"social,omitempty" json:"social,omitempty"`
	Sidebar       []Group           `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`
	Integrations  []Integration     `yaml:"integrations,omitempty" json:"integrations,omitempty"`
}

// EditLink points page "edit" links at a source repository.
type EditLink struct {
	BaseURL string `yaml:"base_url" json:"base_url" jsonschema:"format=uri"`
}

// Group is a labelled section of the sidebar.
type Group struct {
	Label     string `yaml:"label" json:"label" jsonschema:"minLength=1"`
	Collapsed bool   `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items     []Item `yaml:"items" json:"items" jsonschema:"minItems=1"`
}

// Item is a sidebar entry. Exactly one of Link (internal) or URL (external) is set.
type Item struct {
	Label string `yaml:"label" json:"label" jsonschema:"minLength=1"`
	Link  string `yaml:"link,omitempty" json:"link,omitempty" jsonschema:"minLength=1,description=Internal link relative to the site root"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty" jsonschema:"format=uri,description=External absolute URL"`
	Badge string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// JSONSchemaExtend requires exactly one of link or url.
func (Item) JSONSchemaExtend(s *jsonschema.Schema) {
	s.OneOf = []*jsonschema.Schema{
		{Required: []string{"link"}},
		{Required: []string{"url"}},
	}
}

// Target returns the item's link or URL, whichever is set.
func (it Item) Target() string {
	if it.Link != "" {
		return it.Link
	}
	return it.URL
}

// External reports whether the item points outside the site.
func (it Item) External() bool { return it.Link == "" && it.URL != "" }

// Integration is a plugin activation. Options are opaque to docsite and
// interpreted by the plugin.
type Integration struct {
	Name    string         `yaml:"name" json:"name" jsonschema:"minLength=1"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// IntegrationNames returns integration names in declaration order.
func (c *Config) IntegrationNames() []string {
	names := make([]string, 0, len(c.Integrations))
	for _, in := range c.Integrations {
		names = append(names, in.Name)
	}
	return names
}

// Snapshot computes a stable hash of the configuration. Map keys are hashed
// in sorted order; sidebar and integration order is significant.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.EditLink != nil {
		el := *c.EditLink
		out.EditLink = &el
	}
	if c.Social != nil {
		out.Social = maps.Clone(c.Social)
	}
	if c.Sidebar != nil {
		out.Sidebar = make([]Group, len(c.Sidebar))
		for i, g := range c.Sidebar {
			g.Items = append([]Item(nil), g.Items...)
			out.Sidebar[i] = g
		}
	}
	if c.Integrations != nil {
		out.Integrations = make([]Integration, len(c.Integrations))
		for i, in := range c.Integrations {
			out.Integrations[i] = Integration{Name: in.Name, Options: cloneMap(in.Options)}
		}
	}
	return &out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
