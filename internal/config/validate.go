package config

import (
	"fmt"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/integration"
	_ "git.home.luguber.info/inful/docsite/internal/integration/mdx"
	_ "git.home.luguber.info/inful/docsite/internal/integration/starlight"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/variant"
)

// Validate checks the base site value, its integrations and every variant
// derived from it.
// Variant issues are reported with a "variants.<name>." path prefix; issues
// already present on the base value are not repeated.
func Validate(f *File) site.Issues {
	issues := site.Check(&f.Config)
	issues = append(issues, integration.Check(&f.Config)...)
	base := make(map[string]bool, len(issues))
	for _, is := range issues {
		base[is.String()] = true
	}
	for _, name := range f.VariantNames() {
		spec := f.Variants[name]
		prefix := "variants." + name
		if !spec.LinkStyle.Valid() {
			issues = append(issues, site.Issue{
				Path:     prefix + ".link_style",
				Message:  fmt.Sprintf("unknown link style %q (want root, prefixed or absolute)", spec.LinkStyle),
				Severity: site.SeverityError,
			})
			continue
		}
		derived, err := variant.Apply(&f.Config, spec)
		if err != nil {
			msg := err.Error()
			if ce, ok := derrors.AsClassified(err); ok {
				msg = ce.Message()
			}
			issues = append(issues, site.Issue{Path: prefix, Message: msg, Severity: site.SeverityError})
			continue
		}
		for _, is := range site.Check(derived) {
			if base[is.String()] {
				continue
			}
			is.Path = prefix + "." + is.Path
			issues = append(issues, is)
		}
	}
	return issues
}

// Resolve returns the site value for the named variant, or a copy of the
// base value when name is empty.
func (f *File) Resolve(name string) (*site.Config, error) {
	if name == "" {
		return f.Config.Clone(), nil
	}
	spec, ok := f.Variants[name]
	if !ok {
		return nil, variant.NotFound(name, f.VariantNames())
	}
	return variant.Apply(&f.Config, spec)
}
