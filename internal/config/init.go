package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Init writes a starter configuration to path. seed, when non-nil, replaces
// the built-in example value. An existing file is only replaced with force.
func Init(path string, force bool, seed *site.Config) (*File, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return nil, derrors.NewError(derrors.CategoryConflict, "configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to stat config file").
			WithContext("path", path).Build()
	}

	cfg := seed
	if cfg == nil {
		cfg = site.Example()
	}
	f := &File{Version: CurrentVersion, Config: *cfg.Clone()}
	Normalize(f)
	ApplyDefaults(f)

	if err := Save(path, f); err != nil {
		return nil, err
	}
	slog.Info("Configuration initialized", logfields.Path(path), slog.Bool("force", force))
	return f, nil
}
