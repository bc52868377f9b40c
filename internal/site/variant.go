package site

// LinkStyle selects how internal sidebar links are written for a deployment.
type LinkStyle string

const (
	// LinkStyleRoot keeps links relative to the site root ("/setup/").
	LinkStyleRoot LinkStyle = "root"
	// LinkStylePrefixed prepends the base path ("/docs/setup/").
	LinkStylePrefixed LinkStyle = "prefixed"
	// LinkStyleAbsolute writes full URLs ("https://example.org/docs/setup/").
	LinkStyleAbsolute LinkStyle = "absolute"
)

// Valid reports whether ls is a known style. Empty means root.
func (ls LinkStyle) Valid() bool {
	switch ls {
	case "", LinkStyleRoot, LinkStylePrefixed, LinkStyleAbsolute:
		return true
	}
	return false
}

// VariantSpec overrides deployment-specific settings of a Config.
// Empty fields keep the base value.
type VariantSpec struct {
	Site          string            `yaml:"site,omitempty" json:"site,omitempty" jsonschema:"format=uri"`
	Base          string            `yaml:"base,omitempty" json:"base,omitempty" jsonschema:"pattern=^/"`
	TrailingSlash TrailingSlash     `yaml:"trailing_slash,omitempty" json:"trailing_slash,omitempty" jsonschema:"enum=always,enum=never,enum=ignore"`
	LinkStyle     LinkStyle         `yaml:"link_style,omitempty" json:"link_style,omitempty" jsonschema:"enum=root,enum=prefixed,enum=absolute"`
	Social        map[string]string `yaml:"social,omitempty" json:"social,omitempty"`
}
