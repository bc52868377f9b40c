package config

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/foundation/fsutil"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Marshal encodes f. Literal "${" sequences in values are escaped so the
// output loads back to the same configuration. HCL files are read-only and
// cannot be produced.
func Marshal(f *File, format Format) ([]byte, error) {
	data, err := marshal(f, format)
	if err != nil {
		return nil, err
	}
	return []byte(EscapeLiteral(string(data))), nil
}

func marshal(f *File, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode configuration").Build()
		}
		if err := enc.Close(); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode configuration").Build()
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode configuration").Build()
		}
		return append(data, '\n'), nil
	case FormatHCL:
		return nil, derrors.ConfigError("writing HCL configuration is not supported; use .yaml or .json").Build()
	}
	return nil, derrors.ConfigError("unsupported configuration format").WithContext("format", string(format)).Build()
}

// Save writes f to path atomically. The format follows the file extension.
func Save(path string, f *File) error {
	format, ok := DetectFormat(path)
	if !ok {
		return derrors.ConfigError("unsupported configuration format").WithContext("path", path).Build()
	}
	data, err := Marshal(f, format)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	slog.Debug("Configuration saved", logfields.Path(path), slog.Int("bytes", len(data)))
	return nil
}
