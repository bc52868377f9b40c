// Package config loads, normalizes, defaults, validates and saves docsite
// configuration files.
package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// CurrentVersion is the only configuration file version understood by this build.
const CurrentVersion = "1"

// File is the on-disk configuration: the site value plus named deployment variants.
type File struct {
	Version     string `yaml:"version" json:"version" jsonschema:"enum=1"`
	site.Config `yaml:",inline"`
	Variants    map[string]site.VariantSpec `yaml:"variants,omitempty" json:"variants,omitempty"`
}

// VariantNames returns the declared variant names in sorted order.
func (f *File) VariantNames() []string { return site.SortedKeys(f.Variants) }

// Format identifies a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".hcl":
		return FormatHCL, true
	}
	return "", false
}
