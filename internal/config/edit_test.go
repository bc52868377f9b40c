package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

func TestEditKeepsEnvironmentReferences(t *testing.T) {
	t.Setenv("DOCS_SITE", "https://docs.example.org")
	path := writeFile(t, "docsite.yaml", `version: "1"
title: Docs
site: ${DOCS_SITE}
sidebar:
  - label: Start
    items:
      - label: Intro
        link: /intro/
`)

	_, err := Edit(path, func(f *File) error {
		f.Sidebar[0].Items = append(f.Sidebar[0].Items, site.Item{Label: "Setup", Link: "/setup/"})
		return nil
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "${DOCS_SITE}")
	assert.NotContains(t, string(raw), "docs.example.org")

	f, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.org", f.Site)
	assert.Len(t, f.Sidebar[0].Items, 2)
}

func TestEditRejectsInvalidResult(t *testing.T) {
	path := writeFile(t, "docsite.yaml", exampleYAML)

	_, err := Edit(path, func(f *File) error {
		f.Sidebar = append(f.Sidebar, site.Group{Label: "Empty"})
		return nil
	})
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, exampleYAML, string(raw), "file untouched")
}

func TestEditRefusesHCL(t *testing.T) {
	path := writeFile(t, "docsite.hcl", `title = "Docs"`)

	_, err := Edit(path, func(*File) error { return nil })
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestEditKeepsLiteralDollars(t *testing.T) {
	t.Setenv("PRICE", "999")
	path := writeFile(t, "docsite.yaml", `version: "1"
title: Pricing $5 per $HOME
sidebar:
  - label: Start
    items:
      - label: Costs $${PRICE}
        link: /intro/
`)

	_, err := Edit(path, func(f *File) error {
		f.Sidebar[0].Items = append(f.Sidebar[0].Items, site.Item{Label: EscapeLiteral("Budget ${PRICE}"), Link: "/budget/"})
		return nil
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Costs $${PRICE}")
	assert.Contains(t, string(raw), "Budget $${PRICE}")

	f, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Pricing $5 per $HOME", f.Title)
	assert.Equal(t, []string{"Costs ${PRICE}", "Budget ${PRICE}"}, []string{f.Sidebar[0].Items[0].Label, f.Sidebar[0].Items[1].Label})
}
