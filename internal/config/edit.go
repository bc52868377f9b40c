package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/foundation/fsutil"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Edit applies fn to the configuration file at path and saves the result.
// fn sees the file as written, with ${NAME} references and "$${" escapes
// unexpanded, and both are written back untouched. Values fn adds must be
// passed through EscapeLiteral. The edited file must still load cleanly,
// otherwise nothing is written.
func Edit(path string, fn func(*File) error) (*File, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return nil, derrors.ConfigError("unsupported configuration format").WithContext("path", path).Build()
	}
	if format == FormatHCL {
		return nil, derrors.ConfigError("HCL configuration is read-only; edit the file by hand").
			WithContext("path", path).
			Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.NotFoundError("configuration file not found: " + path).Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	f, err := decode(data, format, path, func(s string) string { return s })
	if err != nil {
		return nil, err
	}
	if err := fn(f); err != nil {
		return nil, err
	}

	out, err := marshal(f, format)
	if err != nil {
		return nil, err
	}
	if _, _, err := LoadBytes(out, format, path); err != nil {
		return nil, err
	}
	if err := fsutil.WriteFileAtomic(path, out, 0o644); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	slog.Debug("Configuration edited", logfields.Path(path), slog.Int("bytes", len(out)))
	return f, nil
}
