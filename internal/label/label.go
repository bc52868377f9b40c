// Package label derives human readable sidebar labels from link slugs.
package label

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Root is the label used for the site root.
const Root = "Home"

// FromLink turns the last path segment of link into a title-cased label:
// "/agents_catalog/" becomes "Agents Catalog". Query strings, fragments and
// file extensions are ignored.
func FromLink(link string) string {
	return FromLinkIn(link, language.English)
}

// FromLinkIn is FromLink with language specific casing rules.
func FromLinkIn(link string, tag language.Tag) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	seg := path.Base(strings.Trim(link, "/"))
	if seg == "." || seg == "" {
		return Root
	}
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	words := strings.FieldsFunc(seg, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	if len(words) == 0 {
		return Root
	}
	return cases.Title(tag).String(strings.Join(words, " "))
}
