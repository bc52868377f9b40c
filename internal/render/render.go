// Package render turns a site value into the files an external builder
// consumes and writes them atomically alongside a render manifest.
package render

import (
	"maps"
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Target produces one output file from a site value. Render must be
// deterministic: identical input yields identical bytes.
type Target interface {
	Name() string
	FileName() string
	Render(cfg *site.Config) ([]byte, error)
}

var targets = map[string]Target{
	AstroTarget: Astro{},
	HugoTarget:  Hugo{},
	JSONTarget:  JSON{},
}

const (
	AstroTarget = "astro"
	HugoTarget  = "hugo"
	JSONTarget  = "json"
)

// Lookup returns the target registered under name.
func Lookup(name string) (Target, error) {
	if t, ok := targets[strings.ToLower(name)]; ok {
		return t, nil
	}
	return nil, derrors.NotFoundError("unknown render target: "+name).
		WithContext("known", Targets()).
		Build()
}

// Targets lists target names in sorted order.
func Targets() []string { return slices.Sorted(maps.Keys(targets)) }
