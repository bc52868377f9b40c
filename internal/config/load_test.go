package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

const exampleYAML = `version: "1"
title: Amazon Bedrock Agents for Healthcare and LifeSciences
site: https://aws-samples.github.io
base: /amazon-bedrock-agents-healthcare-lifesciences
social:
  github: https://github.com/aws-samples/amazon-bedrock-agents-cancer-biomarker-discovery/tree/multi-agent-collaboration
sidebar:
  - label: Getting Started
    items:
      - label: Introduction
        link: /
      - label: Setup
        link: /setup/
  - label: Components
    items:
      - label: Agents Catalog
        link: /agents_catalog/
      - label: Multi-Agent Orchestration
        link: /multi_agent_orchestration/
      - label: Deployment
        link: /deployment/
      - label: Evaluations
        link: /evaluations/
integrations:
  - name: starlight
  - name: mdx
variants:
  root:
    base: /
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadYAML(t *testing.T) {
	f, report, err := Load(writeFile(t, "docsite.yaml", exampleYAML))
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.Issues.Errors())
	assert.Equal(t, "/amazon-bedrock-agents-healthcare-lifesciences", f.Base)
	assert.Equal(t, site.TrailingSlashIgnore, f.TrailingSlash, "default applied")
	assert.Equal(t, []string{"starlight", "mdx"}, f.IntegrationNames())
	require.Len(t, f.Sidebar, 2)
	assert.Len(t, f.Sidebar[1].Items, 4)
	assert.Equal(t, []string{"root"}, f.VariantNames())
}

func TestLoadNormalizes(t *testing.T) {
	doc := `title: "  Docs  "
base: docs/
trailing_slash: ALWAYS
social:
  GitHub: https://github.com/example/docs
sidebar:
  - label: " Start "
    items:
      - label: Intro
        link: " /intro/ "
integrations:
  - name: Starlight
`
	f, report, err := Load(writeFile(t, "docsite.yml", doc))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "Docs", f.Title)
	assert.Equal(t, "/docs", f.Base)
	assert.Equal(t, site.TrailingSlashAlways, f.TrailingSlash)
	assert.Equal(t, map[string]string{"github": "https://github.com/example/docs"}, f.Social)
	assert.Equal(t, "Start", f.Sidebar[0].Label)
	assert.Equal(t, "/intro/", f.Sidebar[0].Items[0].Link)
	assert.Equal(t, "starlight", f.Integrations[0].Name)

	assert.Contains(t, report.Warnings, "missing version, assuming 1")
	assert.Contains(t, report.Warnings, "normalized base from 'docs/' to '/docs'")
	assert.Contains(t, report.Warnings, "normalized trailing_slash from 'ALWAYS' to 'always'")
}

func TestLoadUnknownTrailingSlashFallsBack(t *testing.T) {
	f, report, err := Load(writeFile(t, "docsite.yaml", "version: \"1\"\ntitle: Docs\ntrailing_slash: sometimes\n"))
	require.NoError(t, err)
	assert.Equal(t, site.TrailingSlashIgnore, f.TrailingSlash)
	assert.Contains(t, report.Warnings, "unknown trailing_slash 'sometimes', defaulting to ignore")
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCSITE_TEST_SITE", "https://docs.example.org")
	f, _, err := Load(writeFile(t, "docsite.yaml", "version: \"1\"\ntitle: Docs\nsite: ${DOCSITE_TEST_SITE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.org", f.Site)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		path     string
		category derrors.ErrorCategory
	}{
		{"missing file", filepath.Join(dir, "absent.yaml"), derrors.CategoryNotFound},
		{"unsupported extension", writeFile(t, "docsite.toml", "title = 'x'"), derrors.CategoryConfig},
		{"unknown field", writeFile(t, "docsite.yaml", "version: \"1\"\ntitle: Docs\nthemes: [dark]\n"), derrors.CategoryConfig},
		{"unknown json field", writeFile(t, "docsite.json", `{"version":"1","title":"Docs","theme":"dark"}`), derrors.CategoryConfig},
		{"unsupported version", writeFile(t, "docsite.yaml", "version: \"2\"\ntitle: Docs\n"), derrors.CategoryConfig},
		{"invalid structure", writeFile(t, "docsite.yaml", "version: \"1\"\ntitle: Docs\nsidebar:\n  - label: Empty\n    items: []\n"), derrors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.category, derrors.GetCategory(err), err.Error())
		})
	}
}

func TestLoadValidationFailureKeepsReport(t *testing.T) {
	doc := `version: "1"
title: Docs
base: https://example.org/docs
sidebar:
  - label: ""
    items:
      - label: Both
        link: /a/
        url: https://example.org/a/
`
	f, report, err := Load(writeFile(t, "docsite.yaml", doc))
	require.Error(t, err)
	require.NotNil(t, f)
	require.NotNil(t, report)

	paths := map[string]bool{}
	for _, is := range report.Issues.Errors() {
		paths[is.Path] = true
	}
	assert.True(t, paths["base"])
	assert.True(t, paths["sidebar[0].label"])
	assert.True(t, paths["sidebar[0].items[0]"])

	ce, ok := derrors.AsClassified(err)
	require.True(t, ok)
	issues, _ := ce.Context().Get("issues")
	assert.Len(t, issues, len(report.Issues.Errors()))
}

func TestLoadHCL(t *testing.T) {
	t.Setenv("DOCSITE_TEST_BASE", "/docs")
	doc := `
version = "1"
title   = "Docs"
site    = "https://example.github.io"
base    = env.DOCSITE_TEST_BASE
social  = { github = "https://github.com/example/docs" }

group "Getting Started" {
  item "Introduction" { link = "/" }
  item "Repository" { url = "https://github.com/example/docs" }
}

integration "starlight" {
  options = {
    customCss       = ["./src/custom.css"]
    tableOfContents = { maxHeadingLevel = 3 }
  }
}

integration "mdx" {}

variant "root" {
  base       = "/"
  link_style = "root"
}
`
	f, _, err := Load(writeFile(t, "docsite.hcl", doc))
	require.NoError(t, err)

	assert.Equal(t, "/docs", f.Base)
	assert.Equal(t, []site.Item{
		{Label: "Introduction", Link: "/"},
		{Label: "Repository", URL: "https://github.com/example/docs"},
	}, f.Sidebar[0].Items)
	assert.Equal(t, []string{"starlight", "mdx"}, f.IntegrationNames())
	assert.Equal(t, map[string]any{
		"customCss":       []any{"./src/custom.css"},
		"tableOfContents": map[string]any{"maxHeadingLevel": 3},
	}, f.Integrations[0].Options)
	assert.Nil(t, f.Integrations[1].Options)
	assert.Equal(t, site.VariantSpec{Base: "/", LinkStyle: site.LinkStyleRoot}, f.Variants["root"])
}

func TestLoadHCLRejectsNonObjectOptions(t *testing.T) {
	doc := "version = \"1\"\ntitle = \"Docs\"\nintegration \"mdx\" {\n  options = \"yes\"\n}\n"
	_, _, err := Load(writeFile(t, "docsite.hcl", doc))
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestRoundTrip(t *testing.T) {
	t.Setenv("PRICE", "999")
	orig, _, err := LoadBytes([]byte(exampleYAML), FormatYAML, "example")
	require.NoError(t, err)
	orig.Sidebar[0].Items[1].Label = "Pricing $5 per $HOME"
	orig.Sidebar[1].Items[0].Badge = "${PRICE}"
	orig.Integrations[0].Options = map[string]any{
		"customCss":       []any{"./src/custom.css"},
		"pagination":      false,
		"description":     "Costs ${PRICE} or $$5, paid in $USD",
		"tableOfContents": map[string]any{"maxHeadingLevel": 3, "ratio": 1.5},
	}

	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(p, orig))

			got, _, err := Load(p)
			require.NoError(t, err)
			if diff := cmp.Diff(orig, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, orig.Snapshot(), got.Snapshot())
		})
	}
}

func TestSaveHCLUnsupported(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "docsite.hcl"), &File{Version: CurrentVersion})
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}
