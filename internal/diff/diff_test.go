package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/site"
)

func TestCompareIdentical(t *testing.T) {
	res, err := Compare(site.Example(), site.Example())
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Equal(t, "", res.Render())
}

func TestCompareReportsChanges(t *testing.T) {
	a := site.Example()
	b := site.Example()
	b.Base = "/"
	b.Sidebar[0].Items[1].Link = "/install/"

	res, err := Compare(a, b)
	require.NoError(t, err)
	assert.False(t, res.Empty())
	assert.Equal(t, 2, res.Len())

	out := res.Render()
	assert.Contains(t, out, `"base"`)
	assert.Contains(t, out, `- "/example-docs"`)
	assert.Contains(t, out, `+ "/"`)
	assert.Contains(t, out, `+ "/install/"`)
}

func TestCompareIntegrationOrderMatters(t *testing.T) {
	a := site.Example()
	b := site.Example()
	b.Integrations[0], b.Integrations[1] = b.Integrations[1], b.Integrations[0]

	res, err := Compare(a, b)
	require.NoError(t, err)
	assert.False(t, res.Empty())
}

func TestCompareIgnoresSocialKeyOrder(t *testing.T) {
	a := site.Example()
	a.Social = map[string]string{"github": "https://github.com/x", "discord": "https://discord.gg/x"}
	b := site.Example()
	b.Social = map[string]string{"discord": "https://discord.gg/x", "github": "https://github.com/x"}

	res, err := Compare(a, b)
	require.NoError(t, err)
	assert.True(t, res.Empty())
}
