// Package integration holds the registry of framework plugins docsite knows
// how to configure. Plugins register themselves from init() in their own
// subpackages; integrations without a registered plugin are rendered
// generically from their name and options.
package integration

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode"

	"git.home.luguber.info/inful/docsite/internal/render/jslit"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Plugin describes how one framework integration is imported and called.
type Plugin interface {
	// Name is the name used in configuration files.
	Name() string
	// Module is the package the integration is imported from.
	Module() string
	// ImportName is the identifier bound by the default import.
	ImportName() string
	// Defaults merges values derived from cfg under the user's options.
	Defaults(cfg *site.Config, opts map[string]any) map[string]any
	// Check returns problems with the user's options.
	Check(opts map[string]any) []string
	// Call returns the call expression placed in the integrations list.
	Call(cfg *site.Config, opts map[string]any) (string, error)
}

var (
	regMu sync.RWMutex
	reg   = map[string]Plugin{}
)

// Register adds p to the registry. Duplicate names are ignored.
func Register(p Plugin) {
	if p == nil {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[p.Name()]; !ok {
		reg[p.Name()] = p
	}
}

// Lookup returns the registered plugin for name.
func Lookup(name string) (Plugin, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	p, ok := reg[name]
	return p, ok
}

// Names lists registered plugins in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return slices.Sorted(maps.Keys(reg))
}

// Resolve returns the registered plugin for name or a generic one.
func Resolve(name string) Plugin {
	if p, ok := Lookup(name); ok {
		return p
	}
	return Generic{name: name}
}

// Generic handles integrations without a registered plugin: the name is the
// module and the options are passed through unchanged.
type Generic struct{ name string }

func (g Generic) Name() string       { return g.name }
func (g Generic) Module() string     { return g.name }
func (g Generic) ImportName() string { return ImportIdentifier(g.name) }

func (Generic) Defaults(_ *site.Config, opts map[string]any) map[string]any { return opts }
func (Generic) Check(map[string]any) []string                               { return nil }

func (g Generic) Call(cfg *site.Config, opts map[string]any) (string, error) {
	return CallExpr(g.ImportName(), g.Defaults(cfg, opts))
}

// CallExpr renders importName(options). Empty options produce a bare call.
func CallExpr(importName string, opts map[string]any) (string, error) {
	if len(opts) == 0 {
		return importName + "()", nil
	}
	lit, err := jslit.Encoder{Prefix: "    ", Indent: "  "}.Encode(opts)
	if err != nil {
		return "", fmt.Errorf("%s options: %w", importName, err)
	}
	return importName + "(" + lit + ")", nil
}

// Merge returns derived overlaid with user options. User values win.
func Merge(derived, user map[string]any) map[string]any {
	out := make(map[string]any, len(derived)+len(user))
	maps.Copy(out, derived)
	maps.Copy(out, user)
	return out
}

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9]+`)

// ConfigBinding is the identifier the astro entrypoint imports from
// 'astro/config'. No integration may bind it.
const ConfigBinding = "defineConfig"

// reservedWords cannot be bound by an import in an ES module.
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "arguments": true, "eval": true,
}

// ImportIdentifier derives a camelCase identifier from a package name:
// "@astrojs/sitemap" becomes "sitemap", "astro-expressive-code" becomes
// "astroExpressiveCode". Reserved words get a leading underscore.
func ImportIdentifier(module string) string {
	name := module
	if strings.HasPrefix(name, "@") {
		if _, rest, ok := strings.Cut(name, "/"); ok {
			name = rest
		}
	}
	parts := nonIdent.Split(name, -1)
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(strings.ToLower(p[:1]) + p[1:])
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	id := b.String()
	switch {
	case id == "":
		return "integration"
	case unicode.IsDigit(rune(id[0])), reservedWords[id]:
		return "_" + id
	}
	return id
}

// Check reports plugin option problems as errors and unregistered
// integrations as warnings. Two integrations binding the same import
// identifier, or one binding ConfigBinding, are errors.
func Check(cfg *site.Config) site.Issues {
	var issues site.Issues
	bound := map[string]int{}
	for i, in := range cfg.Integrations {
		if in.Name == "" {
			continue
		}
		path := fmt.Sprintf("integrations[%d]", i)
		p, known := Lookup(in.Name)
		if !known {
			p = Generic{name: in.Name}
			issues = append(issues, site.Issue{
				Path:     path + ".name",
				Message:  fmt.Sprintf("unknown integration %q, rendering a generic default import", in.Name),
				Severity: site.SeverityWarning,
			})
		}
		for _, msg := range p.Check(in.Options) {
			issues = append(issues, site.Issue{Path: path + ".options", Message: msg, Severity: site.SeverityError})
		}
		id := p.ImportName()
		if id == ConfigBinding {
			issues = append(issues, site.Issue{
				Path:     path + ".name",
				Message:  fmt.Sprintf("import name %q clashes with the astro config import", id),
				Severity: site.SeverityError,
			})
			continue
		}
		if prev, dup := bound[id]; dup && cfg.Integrations[prev].Name != in.Name {
			issues = append(issues, site.Issue{
				Path:     path + ".name",
				Message:  fmt.Sprintf("import name %q already bound by integrations[%d]", id, prev),
				Severity: site.SeverityError,
			})
			continue
		} else if dup {
			continue
		}
		bound[id] = i
	}
	return issues
}
