package render

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/foundation/fsutil"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/version"
)

// ManifestFile is written next to rendered output.
const ManifestFile = ".docsite-manifest.json"

// Manifest records the last render of each target in an output directory.
type Manifest struct {
	Targets map[string]Entry `json:"targets"`
}

// Entry describes one rendered file.
type Entry struct {
	RenderID   string    `json:"render_id"`
	File       string    `json:"file"`
	Snapshot   string    `json:"snapshot"`
	Version    string    `json:"version"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Result is the outcome of Write.
type Result struct {
	Path    string
	Entry   Entry
	Skipped bool
}

// ReadManifest loads the manifest in dir. A missing manifest is empty.
func ReadManifest(dir string) (*Manifest, error) {
	m := &Manifest{Targets: map[string]Entry{}}
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	if m.Targets == nil {
		m.Targets = map[string]Entry{}
	}
	return m, nil
}

// Write renders cfg with target into dir. When the manifest shows the same
// configuration snapshot was already rendered by this version and the file
// is still present, nothing is written unless force is set.
func Write(ctx context.Context, dir string, target Target, cfg *site.Config, force bool) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := filepath.Join(dir, target.FileName())
	snapshot := cfg.Snapshot()

	manifest, err := ReadManifest(dir)
	if err != nil {
		// A corrupt manifest only disables skipping.
		slog.Warn("Ignoring unreadable render manifest", logfields.Path(filepath.Join(dir, ManifestFile)), logfields.Error(err))
		manifest = &Manifest{Targets: map[string]Entry{}}
	}
	if prev, ok := manifest.Targets[target.Name()]; ok && !force &&
		prev.Snapshot == snapshot && prev.Version == version.Version && fsutil.Exists(out) {
		slog.Info("Render up to date, skipping",
			logfields.Target(target.Name()), logfields.Output(out), logfields.Snapshot(snapshot))
		return &Result{Path: out, Entry: prev, Skipped: true}, nil
	}

	start := time.Now()
	data, err := target.Render(cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := fsutil.WriteFileAtomic(out, data, 0o644); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write rendered output").
			WithContext("path", out).Build()
	}

	entry := Entry{
		RenderID:   uuid.NewString(),
		File:       target.FileName(),
		Snapshot:   snapshot,
		Version:    version.Version,
		RenderedAt: time.Now().UTC(),
	}
	manifest.Targets[target.Name()] = entry
	mdata, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode render manifest").Build()
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(dir, ManifestFile), append(mdata, '\n'), 0o644); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write render manifest").
			WithContext("path", dir).Build()
	}

	slog.Info("Rendered",
		logfields.Target(target.Name()),
		logfields.Output(out),
		logfields.RenderID(entry.RenderID),
		logfields.Snapshot(snapshot),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return &Result{Path: out, Entry: entry}, nil
}
