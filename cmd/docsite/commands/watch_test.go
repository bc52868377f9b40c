package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/metrics"
)

type fakeRecorder struct {
	metrics.NoopRecorder
	loads    []metrics.ResultLabel
	errors   int
	warnings int
}

func (f *fakeRecorder) ObserveLoad(result metrics.ResultLabel, _ time.Duration) {
	f.loads = append(f.loads, result)
}

func (f *fakeRecorder) SetIssues(errors, warnings int) {
	f.errors, f.warnings = errors, warnings
}

func TestLoadObserved(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(variantsYAML), 0o600))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("title: Docs\nsidebar:\n  - label: Start\n    items: []\n"), 0o600))

	rec := &fakeRecorder{}
	cfg, err := loadObserved(rec, good, "root")
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.Base)

	_, err = loadObserved(rec, bad, "")
	require.Error(t, err)
	assert.Equal(t, 1, rec.errors)

	_, err = loadObserved(rec, filepath.Join(dir, "missing.yaml"), "")
	require.Error(t, err)

	assert.Equal(t, []metrics.ResultLabel{metrics.ResultSuccess, metrics.ResultInvalid, metrics.ResultFailed}, rec.loads)
}

func TestLoadObservedCountsIntegrationWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	doc := variantsYAML + "integrations:\n  - name: starlight\n  - name: sitemap-extra\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	rec := &fakeRecorder{}
	_, err := loadObserved(rec, path, "")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.errors)
	assert.Equal(t, 1, rec.warnings)
	assert.Equal(t, []metrics.ResultLabel{metrics.ResultSuccess}, rec.loads)
}
