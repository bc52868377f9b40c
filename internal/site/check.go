package site

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Severity of a structural issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one violated structural property.
type Issue struct {
	Path     string
	Message  string
	Severity Severity
}

func (i Issue) String() string { return i.Path + ": " + i.Message }

// Issues is the result of Check.
type Issues []Issue

// Errors returns only error-severity issues.
func (is Issues) Errors() Issues { return is.filter(SeverityError) }

// Warnings returns only warning-severity issues.
func (is Issues) Warnings() Issues { return is.filter(SeverityWarning) }

func (is Issues) filter(sev Severity) Issues {
	var out Issues
	for _, i := range is {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Strings renders every issue as "path: message".
func (is Issues) Strings() []string {
	out := make([]string, len(is))
	for n, i := range is {
		out[n] = i.String()
	}
	return out
}

// Err folds error-severity issues into a validation error, or returns nil.
func (is Issues) Err() error {
	errs := is.Errors()
	if len(errs) == 0 {
		return nil
	}
	return derrors.ValidationError(fmt.Sprintf("configuration has %d problem(s)", len(errs))).
		WithContext("issues", errs.Strings()).
		Build()
}

type checker struct {
	issues Issues
}

func (c *checker) errorf(path, format string, args ...any) {
	c.issues = append(c.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
}

func (c *checker) warnf(path, format string, args ...any) {
	c.issues = append(c.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
}

// Check verifies the structural properties of cfg and returns every issue found.
func Check(cfg *Config) Issues {
	c := &checker{}
	if cfg == nil {
		c.errorf("", "configuration is empty")
		return c.issues
	}
	if strings.TrimSpace(cfg.Title) == "" {
		c.errorf("title", "must not be empty")
	}
	if cfg.Site != "" && !IsAbsoluteHTTP(cfg.Site) {
		c.errorf("site", "must be an absolute http(s) URL, got %q", cfg.Site)
	}
	if cfg.Base != "" {
		if msg := basePathProblem(cfg.Base); msg != "" {
			c.errorf("base", "%s", msg)
		}
	}
	if !cfg.TrailingSlash.Valid() {
		c.errorf("trailing_slash", "unknown policy %q (want always, never or ignore)", cfg.TrailingSlash)
	}
	if cfg.Locale != "" {
		if _, err := language.Parse(cfg.Locale); err != nil {
			c.errorf("locale", "invalid language tag %q", cfg.Locale)
		}
	}
	if cfg.EditLink != nil && !IsAbsoluteHTTP(cfg.EditLink.BaseURL) {
		c.errorf("edit_link.base_url", "must be an absolute http(s) URL")
	}
	c.checkSocial(cfg.Social)
	c.checkSidebar(cfg)
	c.checkIntegrations(cfg.Integrations)
	return c.issues
}

func (c *checker) checkSocial(social map[string]string) {
	for _, k := range SortedKeys(social) {
		path := "social." + k
		if strings.TrimSpace(k) == "" {
			c.errorf("social", "platform name must not be empty")
			continue
		}
		if !IsAbsoluteHTTP(social[k]) {
			c.errorf(path, "must be an absolute http(s) URL")
		}
	}
}

func (c *checker) checkSidebar(cfg *Config) {
	seen := map[string]string{}
	for gi, g := range cfg.Sidebar {
		gpath := fmt.Sprintf("sidebar[%d]", gi)
		if strings.TrimSpace(g.Label) == "" {
			c.errorf(gpath+".label", "must not be empty")
		}
		if len(g.Items) == 0 {
			c.errorf(gpath+".items", "group must contain at least one item")
		}
		for ii, it := range g.Items {
			ipath := fmt.Sprintf("%s.items[%d]", gpath, ii)
			if strings.TrimSpace(it.Label) == "" {
				c.errorf(ipath+".label", "must not be empty")
			}
			hasLink, hasURL := strings.TrimSpace(it.Link) != "", strings.TrimSpace(it.URL) != ""
			switch {
			case hasLink && hasURL:
				c.errorf(ipath, "exactly one of link or url may be set")
				continue
			case !hasLink && !hasURL:
				c.errorf(ipath, "exactly one of link or url is required")
				continue
			case hasURL:
				if !IsAbsoluteHTTP(it.URL) {
					c.errorf(ipath+".url", "must be an absolute http(s) URL, got %q", it.URL)
				}
				continue
			}
			c.checkLink(cfg, ipath+".link", it.Link)
			if prev, dup := seen[it.Link]; dup {
				c.warnf(ipath+".link", "duplicates %s", prev)
			} else {
				seen[it.Link] = ipath
			}
		}
	}
}

func (c *checker) checkLink(cfg *Config, path, link string) {
	if strings.ContainsAny(link, " \t\n") {
		c.errorf(path, "must not contain whitespace")
		return
	}
	u, err := url.Parse(link)
	if err != nil {
		c.errorf(path, "invalid link: %v", err)
		return
	}
	if u.Scheme != "" || u.Host != "" {
		if !IsAbsoluteHTTP(link) {
			c.errorf(path, "internal link must be a path or an http(s) URL")
			return
		}
		if cfg.Site == "" {
			c.errorf(path, "absolute internal link needs site to be set; use url for external entries")
		} else if _, ok := SitePath(cfg.Site, cfg.Base, link); !ok {
			c.errorf(path, "absolute link must point under %s%s; use url for external entries",
				strings.TrimSuffix(cfg.Site, "/"), strings.TrimSuffix(cfg.Base, "/"))
		}
		return
	}
	if !strings.HasPrefix(link, "/") {
		c.errorf(path, "must start with /, got %q", link)
		return
	}
	if link == "/" || u.Path == "" {
		return
	}
	switch cfg.TrailingSlash {
	case TrailingSlashAlways:
		if !strings.HasSuffix(u.Path, "/") {
			c.warnf(path, "link lacks trailing slash required by policy %q", cfg.TrailingSlash)
		}
	case TrailingSlashNever:
		if strings.HasSuffix(u.Path, "/") {
			c.warnf(path, "link has trailing slash forbidden by policy %q", cfg.TrailingSlash)
		}
	}
}

func (c *checker) checkIntegrations(ins []Integration) {
	seen := map[string]int{}
	for i, in := range ins {
		path := fmt.Sprintf("integrations[%d]", i)
		if strings.TrimSpace(in.Name) == "" {
			c.errorf(path+".name", "must not be empty")
			continue
		}
		if prev, dup := seen[in.Name]; dup {
			c.errorf(path+".name", "integration %q already declared at integrations[%d]", in.Name, prev)
			continue
		}
		seen[in.Name] = i
	}
}

// basePathProblem describes why p is not a valid base path, or returns "".
func basePathProblem(p string) string {
	if !strings.HasPrefix(p, "/") {
		return fmt.Sprintf("must start with /, got %q", p)
	}
	if strings.HasPrefix(p, "//") {
		return "must not be protocol-relative"
	}
	u, err := url.Parse(p)
	if err != nil {
		return fmt.Sprintf("invalid path: %v", err)
	}
	if u.Scheme != "" || u.Host != "" {
		return "must be a path without protocol or host"
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "must not contain a query or fragment"
	}
	if strings.ContainsAny(p, " \t\n") {
		return "must not contain whitespace"
	}
	return ""
}

// ValidBasePath reports whether p is a valid URL path prefix.
func ValidBasePath(p string) bool { return basePathProblem(p) == "" }

// IsAbsoluteHTTP reports whether s is an absolute http or https URL with a host.
func IsAbsoluteHTTP(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SitePath reduces an absolute link under siteURL and base to a path from
// the site root. It reports false for links on any other host or path.
func SitePath(siteURL, base, link string) (string, bool) {
	if siteURL == "" {
		return "", false
	}
	rest, ok := strings.CutPrefix(link, strings.TrimSuffix(siteURL, "/")+strings.TrimSuffix(base, "/"))
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
