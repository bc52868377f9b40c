// Package variant derives deployment variants from a base site value: a
// different site URL or base path, a trailing-slash policy and a link style.
package variant

import (
	"fmt"
	"maps"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Apply returns a deep copy of base with spec's overrides and every internal
// sidebar link rewritten to spec's link style and trailing-slash policy.
// External items (URL set) are never touched. Applying the same spec to its
// own output yields the same value.
func Apply(base *site.Config, spec site.VariantSpec) (*site.Config, error) {
	if !spec.LinkStyle.Valid() {
		return nil, derrors.ValidationError(fmt.Sprintf("unknown link style %q", spec.LinkStyle)).Build()
	}
	out := base.Clone()
	if spec.Site != "" {
		out.Site = spec.Site
	}
	if spec.Base != "" {
		out.Base = spec.Base
	}
	if spec.TrailingSlash != "" {
		out.TrailingSlash = spec.TrailingSlash
	}
	out.Social = mergeSocial(out.Social, spec.Social)

	style := spec.LinkStyle
	if style == "" {
		style = site.LinkStyleRoot
	}
	if style == site.LinkStyleAbsolute && out.Site == "" {
		return nil, derrors.ValidationError("link style absolute requires a site URL").Build()
	}

	rw := rewriter{from: base, to: out, style: style}
	for gi := range out.Sidebar {
		items := out.Sidebar[gi].Items
		for ii := range items {
			if items[ii].Link != "" {
				items[ii].Link = rw.rewrite(items[ii].Link)
			}
		}
	}
	return out, nil
}

// NotFound reports an unknown variant name.
func NotFound(name string, known []string) error {
	msg := fmt.Sprintf("unknown variant %q", name)
	if len(known) > 0 {
		msg += " (known: " + strings.Join(known, ", ") + ")"
	}
	return derrors.NotFoundError(msg).WithContext("variant", name).Build()
}

// mergeSocial overlays override on social. An empty override value removes the key.
func mergeSocial(social, override map[string]string) map[string]string {
	if len(override) == 0 {
		return social
	}
	out := maps.Clone(social)
	if out == nil {
		out = make(map[string]string, len(override))
	}
	for k, v := range override {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

type rewriter struct {
	from, to *site.Config
	style    site.LinkStyle
}

func (r rewriter) rewrite(link string) string {
	p, ok := r.rootPath(link)
	if !ok {
		return link
	}
	p = ApplyTrailingSlash(p, r.to.TrailingSlash)
	switch r.style {
	case site.LinkStylePrefixed:
		return joinBase(r.to.Base, p, r.to.TrailingSlash)
	case site.LinkStyleAbsolute:
		return strings.TrimSuffix(r.to.Site, "/") + joinBase(r.to.Base, p, r.to.TrailingSlash)
	}
	return p
}

// rootPath reduces link to a path relative to the site root. Links that are
// relative without a leading slash or point at a foreign host are reported
// as not rewritable.
func (r rewriter) rootPath(link string) (string, bool) {
	if site.IsAbsoluteHTTP(link) {
		for _, c := range []*site.Config{r.to, r.from} {
			if p, ok := site.SitePath(c.Site, c.Base, link); ok {
				return p, true
			}
		}
		return "", false
	}
	if !strings.HasPrefix(link, "/") {
		return "", false
	}
	if r.style == site.LinkStyleRoot {
		return link, true
	}
	for _, b := range []string{r.to.Base, r.from.Base} {
		if p, ok := cutPathPrefix(link, basePrefix(b)); ok && basePrefix(b) != "" {
			return p, true
		}
	}
	return link, true
}

// ApplyTrailingSlash normalizes p to the policy: always adds a trailing
// slash, never strips it, ignore keeps p as is. The root path and paths
// whose last segment looks like a file are left alone.
func ApplyTrailingSlash(p string, ts site.TrailingSlash) string {
	pathPart, suffix := splitSuffix(p)
	if pathPart == "/" || pathPart == "" {
		return p
	}
	switch ts {
	case site.TrailingSlashAlways:
		last := pathPart[strings.LastIndex(pathPart, "/")+1:]
		if !strings.HasSuffix(pathPart, "/") && !strings.Contains(last, ".") {
			pathPart += "/"
		}
	case site.TrailingSlashNever:
		pathPart = strings.TrimRight(pathPart, "/")
		if pathPart == "" {
			pathPart = "/"
		}
	}
	return pathPart + suffix
}

// splitSuffix separates a query string or fragment from the path.
func splitSuffix(p string) (string, string) {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i], p[i:]
	}
	return p, ""
}

func basePrefix(base string) string {
	return strings.TrimSuffix(base, "/")
}

func cutPathPrefix(link, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(link, prefix)
	if !ok {
		return "", false
	}
	switch {
	case rest == "":
		return "/", true
	case rest[0] == '/':
		return rest, true
	case rest[0] == '?' || rest[0] == '#':
		return "/" + rest, true
	}
	return "", false
}

func joinBase(base, p string, ts site.TrailingSlash) string {
	b := basePrefix(base)
	if b == "" {
		return p
	}
	if pathPart, suffix := splitSuffix(p); pathPart == "/" {
		if ts == site.TrailingSlashNever {
			return b + suffix
		}
		return b + "/" + suffix
	}
	return b + p
}
