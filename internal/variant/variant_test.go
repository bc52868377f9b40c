package variant

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

func links(cfg *site.Config) []string {
	var out []string
	for _, g := range cfg.Sidebar {
		for _, it := range g.Items {
			out = append(out, it.Target())
		}
	}
	return out
}

func withExternal() *site.Config {
	cfg := site.Example()
	cfg.Sidebar = append(cfg.Sidebar, site.Group{
		Label: "Elsewhere",
		Items: []site.Item{{Label: "Repo", URL: "https://github.com/example/example-docs"}},
	})
	return cfg
}

func TestApplyLinkStyles(t *testing.T) {
	tests := []struct {
		name string
		spec site.VariantSpec
		want []string
	}{
		{
			name: "root keeps links",
			spec: site.VariantSpec{Base: "/"},
			want: []string{"/", "/setup/", "/agents_catalog/", "/deployment/", "/evaluations/", "https://github.com/example/example-docs"},
		},
		{
			name: "prefixed prepends base",
			spec: site.VariantSpec{LinkStyle: site.LinkStylePrefixed},
			want: []string{"/example-docs/", "/example-docs/setup/", "/example-docs/agents_catalog/", "/example-docs/deployment/", "/example-docs/evaluations/", "https://github.com/example/example-docs"},
		},
		{
			name: "absolute uses overridden site",
			spec: site.VariantSpec{Site: "https://docs.example.org", Base: "/", LinkStyle: site.LinkStyleAbsolute},
			want: []string{"https://docs.example.org/", "https://docs.example.org/setup/", "https://docs.example.org/agents_catalog/", "https://docs.example.org/deployment/", "https://docs.example.org/evaluations/", "https://github.com/example/example-docs"},
		},
		{
			name: "never strips trailing slash",
			spec: site.VariantSpec{TrailingSlash: site.TrailingSlashNever, LinkStyle: site.LinkStylePrefixed},
			want: []string{"/example-docs", "/example-docs/setup", "/example-docs/agents_catalog", "/example-docs/deployment", "/example-docs/evaluations", "https://github.com/example/example-docs"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Apply(withExternal(), tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, links(out))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	specs := []site.VariantSpec{
		{LinkStyle: site.LinkStylePrefixed},
		{LinkStyle: site.LinkStyleAbsolute, TrailingSlash: site.TrailingSlashNever},
		{Site: "https://docs.example.org", Base: "/docs", LinkStyle: site.LinkStylePrefixed, TrailingSlash: site.TrailingSlashAlways},
		{Base: "/"},
	}
	for _, spec := range specs {
		once, err := Apply(withExternal(), spec)
		require.NoError(t, err)
		twice, err := Apply(once, spec)
		require.NoError(t, err)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("second Apply changed the value (-once +twice):\n%s", diff)
		}
	}
}

func TestApplyDoesNotMutateBase(t *testing.T) {
	base := withExternal()
	snapshot := base.Snapshot()
	_, err := Apply(base, site.VariantSpec{
		Site:      "https://docs.example.org",
		LinkStyle: site.LinkStyleAbsolute,
		Social:    map[string]string{"mastodon": "https://hachyderm.io/@example"},
	})
	require.NoError(t, err)
	assert.Equal(t, snapshot, base.Snapshot())
}

func TestApplyOverridesAndSocialMerge(t *testing.T) {
	base := site.Example()
	base.Social["discord"] = "https://discord.gg/example"

	out, err := Apply(base, site.VariantSpec{
		Site:          "https://docs.example.org",
		Base:          "/",
		TrailingSlash: site.TrailingSlashAlways,
		Social: map[string]string{
			"discord":  "",
			"mastodon": "https://hachyderm.io/@example",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.org", out.Site)
	assert.Equal(t, "/", out.Base)
	assert.Equal(t, site.TrailingSlashAlways, out.TrailingSlash)
	assert.Equal(t, map[string]string{
		"github":   "https://github.com/example/example-docs",
		"mastodon": "https://hachyderm.io/@example",
	}, out.Social)
}

func TestApplyAbsoluteRequiresSite(t *testing.T) {
	base := site.Example()
	base.Site = ""
	_, err := Apply(base, site.VariantSpec{LinkStyle: site.LinkStyleAbsolute})
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
}

func TestApplyLeavesUnrewritableLinks(t *testing.T) {
	base := site.Example()
	base.Sidebar[0].Items = []site.Item{
		{Label: "Relative", Link: "setup/"},
		{Label: "Foreign", Link: "https://other.example.com/x/"},
	}
	out, err := Apply(base, site.VariantSpec{LinkStyle: site.LinkStylePrefixed})
	require.NoError(t, err)
	assert.Equal(t, "setup/", out.Sidebar[0].Items[0].Link)
	assert.Equal(t, "https://other.example.com/x/", out.Sidebar[0].Items[1].Link)
}

func TestApplyTrailingSlash(t *testing.T) {
	tests := []struct {
		in   string
		ts   site.TrailingSlash
		want string
	}{
		{"/setup", site.TrailingSlashAlways, "/setup/"},
		{"/setup/", site.TrailingSlashAlways, "/setup/"},
		{"/setup#install", site.TrailingSlashAlways, "/setup/#install"},
		{"/files/guide.pdf", site.TrailingSlashAlways, "/files/guide.pdf"},
		{"/setup/", site.TrailingSlashNever, "/setup"},
		{"/setup/?tab=1", site.TrailingSlashNever, "/setup?tab=1"},
		{"/", site.TrailingSlashNever, "/"},
		{"/setup", site.TrailingSlashIgnore, "/setup"},
	}
	for _, tt := range tests {
		t.Run(tt.in+"/"+string(tt.ts), func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyTrailingSlash(tt.in, tt.ts))
		})
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("prod", []string{"github-pages", "staging"})
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
	assert.Contains(t, err.Error(), `unknown variant "prod" (known: github-pages, staging)`)
}
