// Package gitinfo derives deployment settings (site URL, base path, repository
// links) from the origin remote of a local git repository.
package gitinfo

import (
	"errors"
	"log/slog"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Remote identifies a hosted repository.
type Remote struct {
	Host   string
	Owner  string
	Repo   string
	Branch string // checked out branch, empty when unknown
}

// FromRepo opens the repository containing dir and parses its origin
// remote. When there is no origin the first configured remote is used.
func FromRepo(dir string) (*Remote, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, derrors.NotFoundError("not a git repository: " + dir).Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryGit, "failed to open repository").
			WithContext("path", dir).Build()
	}

	rawURL, err := remoteURL(repo)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryGit, "repository has no usable remote").
			WithContext("path", dir).Build()
	}
	r, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		r.Branch = head.Name().Short()
	}
	slog.Debug("Read git remote", logfields.Path(dir), slog.String("host", r.Host),
		slog.String("owner", r.Owner), slog.String("repo", r.Repo), slog.String("branch", r.Branch))
	return r, nil
}

// remoteURL prefers origin, then the first remote with a URL in name order.
func remoteURL(repo *git.Repository) (string, error) {
	if origin, err := repo.Remote(git.DefaultRemoteName); err == nil {
		if urls := origin.Config().URLs; len(urls) > 0 {
			return urls[0], nil
		}
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return "", err
	}
	slices.SortFunc(remotes, func(a, b *git.Remote) int {
		return strings.Compare(a.Config().Name, b.Config().Name)
	})
	for _, rm := range remotes {
		if urls := rm.Config().URLs; len(urls) > 0 {
			return urls[0], nil
		}
	}
	return "", git.ErrRemoteNotFound
}

// ParseURL understands https, ssh:// and scp-style ("git@host:owner/repo.git")
// remote URLs.
func ParseURL(raw string) (*Remote, error) {
	raw = strings.TrimSpace(raw)
	var host, p string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return nil, invalidURL(raw)
		}
		host, p = u.Hostname(), u.Path
	case strings.Contains(raw, ":"):
		userHost, rest, _ := strings.Cut(raw, ":")
		if i := strings.LastIndex(userHost, "@"); i >= 0 {
			userHost = userHost[i+1:]
		}
		host, p = userHost, rest
	default:
		return nil, invalidURL(raw)
	}

	p = strings.TrimSuffix(strings.Trim(p, "/"), ".git")
	owner, repo := path.Split(p)
	owner = strings.Trim(owner, "/")
	if host == "" || owner == "" || repo == "" {
		return nil, invalidURL(raw)
	}
	return &Remote{Host: strings.ToLower(host), Owner: owner, Repo: repo}, nil
}

func invalidURL(raw string) error {
	return derrors.GitError("unrecognized remote URL: "+raw).WithContext("url", raw).Build()
}

var pagesDomains = map[string]string{
	"github.com": "github.io",
	"gitlab.com": "gitlab.io",
}

// PagesSite returns the static hosting origin for the owner, or "" when
// the host has no known pages service.
func (r *Remote) PagesSite() string {
	domain, ok := pagesDomains[r.Host]
	if !ok {
		return ""
	}
	return "https://" + strings.ToLower(path.Base(r.Owner)) + "." + domain
}

// PagesBase returns the path the repository is served under. User and
// organisation sites ("owner.github.io") are served from the root.
func (r *Remote) PagesBase() string {
	if site := r.PagesSite(); site != "" && strings.EqualFold("https://"+r.Repo, site) {
		return "/"
	}
	return "/" + r.Repo
}

// WebURL is the browsable repository URL.
func (r *Remote) WebURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Repo
}

// EditURL points at the edit view of dir on the checked out branch.
func (r *Remote) EditURL(dir string) string {
	branch := r.Branch
	if branch == "" {
		branch = "main"
	}
	u := r.WebURL() + "/edit/" + branch + "/"
	if d := strings.Trim(dir, "/"); d != "" && d != "." {
		u += d + "/"
	}
	return u
}

// Apply sets cfg's deployment settings from the remote. Settings the host
// cannot provide are left unchanged.
func (r *Remote) Apply(cfg *site.Config, docsDir string) {
	if s := r.PagesSite(); s != "" {
		cfg.Site = s
		cfg.Base = r.PagesBase()
	}
	if cfg.Social == nil {
		cfg.Social = map[string]string{}
	}
	platform := strings.TrimSuffix(r.Host, ".com")
	cfg.Social[platform] = r.WebURL()
	cfg.EditLink = &site.EditLink{BaseURL: r.EditURL(docsDir)}
}
