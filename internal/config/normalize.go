package config

import (
	"fmt"
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// NormalizationResult captures adjustments made by Normalize.
type NormalizationResult struct{ Warnings []string }

func (r *NormalizationResult) changed(field string, from, to any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to))
}

func (r *NormalizationResult) unknown(field, value, def string) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def))
}

var trailingSlashValues = normalization.NewEnum("trailing slash", map[string]site.TrailingSlash{
	"always": site.TrailingSlashAlways,
	"never":  site.TrailingSlashNever,
	"ignore": site.TrailingSlashIgnore,
})

var linkStyleValues = normalization.NewEnum("link style", map[string]site.LinkStyle{
	"root":     site.LinkStyleRoot,
	"prefixed": site.LinkStylePrefixed,
	"absolute": site.LinkStyleAbsolute,
})

// Normalize canonicalizes enumerations, base paths, labels and social keys
// in place. It never fails; every coercion is reported as a warning.
func Normalize(f *File) *NormalizationResult {
	res := &NormalizationResult{}
	if f == nil {
		return res
	}
	f.Version = strings.TrimSpace(f.Version)
	if f.Version == "" {
		res.Warnings = append(res.Warnings, "missing version, assuming "+CurrentVersion)
	}

	c := &f.Config
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.Site = strings.TrimSpace(c.Site)
	c.Locale = strings.TrimSpace(c.Locale)
	c.TrailingSlash = normalizeTrailingSlash("trailing_slash", c.TrailingSlash, res)
	c.Base = normalizeBase("base", c.Base, res)
	c.Social = normalizeSocial("social", c.Social, res)

	for gi := range c.Sidebar {
		g := &c.Sidebar[gi]
		g.Label = strings.TrimSpace(g.Label)
		for ii := range g.Items {
			it := &g.Items[ii]
			it.Label = strings.TrimSpace(it.Label)
			it.Link = strings.TrimSpace(it.Link)
			it.URL = strings.TrimSpace(it.URL)
		}
	}
	for i := range c.Integrations {
		c.Integrations[i].Name = strings.ToLower(strings.TrimSpace(c.Integrations[i].Name))
	}

	for _, name := range f.VariantNames() {
		spec := f.Variants[name]
		prefix := "variants." + name
		spec.Site = strings.TrimSpace(spec.Site)
		spec.TrailingSlash = normalizeTrailingSlash(prefix+".trailing_slash", spec.TrailingSlash, res)
		spec.Base = normalizeBase(prefix+".base", spec.Base, res)
		spec.Social = normalizeSocial(prefix+".social", spec.Social, res)
		if spec.LinkStyle != "" {
			// unknown link styles are left for Validate to reject
			if r := linkStyleValues.Normalize(spec.LinkStyle, spec.LinkStyle); r.Known && r.Changed {
				res.changed(prefix+".link_style", spec.LinkStyle, r.Value)
				spec.LinkStyle = r.Value
			}
		}
		f.Variants[name] = spec
	}
	return res
}

func normalizeTrailingSlash(field string, ts site.TrailingSlash, res *NormalizationResult) site.TrailingSlash {
	if strings.TrimSpace(string(ts)) == "" {
		return ""
	}
	r := trailingSlashValues.Normalize(ts, site.TrailingSlashIgnore)
	switch {
	case !r.Known:
		res.unknown(field, string(ts), string(site.TrailingSlashIgnore))
	case r.Changed:
		res.changed(field, ts, r.Value)
	}
	return r.Value
}

// normalizeBase adds a missing leading slash and cleans the path. Values
// carrying a scheme or host are left untouched for validation to report.
func normalizeBase(field, base string, res *NormalizationResult) string {
	b := strings.TrimSpace(base)
	if b == "" || strings.Contains(b, "://") || strings.HasPrefix(b, "//") {
		return b
	}
	if !strings.HasPrefix(b, "/") {
		b = "/" + b
	}
	b = path.Clean(b)
	if b != base {
		res.changed(field, base, b)
	}
	return b
}

func normalizeSocial(field string, social map[string]string, res *NormalizationResult) map[string]string {
	if social == nil {
		return nil
	}
	out := make(map[string]string, len(social))
	for _, k := range site.SortedKeys(social) {
		nk := strings.ToLower(strings.TrimSpace(k))
		if nk != k {
			res.changed(field+" key", k, nk)
		}
		if _, dup := out[nk]; dup {
			res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate %s key '%s' after normalization, keeping first", field, nk))
			continue
		}
		out[nk] = strings.TrimSpace(social[k])
	}
	return out
}
