package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Report collects non-fatal findings of a load: normalization warnings and
// every structural issue (errors and warnings).
type Report struct {
	Warnings []string
	Issues   site.Issues
}

// Load reads, decodes, normalizes, defaults and validates the configuration
// at path. When validation fails the decoded file and the report are still
// returned alongside the error so callers can display every issue.
func Load(path string) (*File, *Report, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return nil, nil, derrors.ConfigError("unsupported configuration format").
			WithContext("path", path).
			WithContext("supported", []string{".yaml", ".yml", ".json", ".hcl"}).
			Build()
	}

	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, derrors.NotFoundError("configuration file not found: " + path).Build()
		}
		return nil, nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	f, report, err := LoadBytes(data, format, path)
	if err != nil {
		return f, report, err
	}
	slog.Debug("Configuration loaded",
		logfields.Path(path),
		slog.Int("groups", len(f.Sidebar)),
		slog.Int("integrations", len(f.Integrations)),
		slog.Int("variants", len(f.Variants)))
	return f, report, nil
}

// LoadBytes runs the load pipeline on in-memory data. name is used in
// diagnostics only.
func LoadBytes(data []byte, format Format, name string) (*File, *Report, error) {
	f, err := Decode(data, format, name)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{}
	report.Warnings = append(report.Warnings, Normalize(f).Warnings...)
	ApplyDefaults(f)

	if f.Version != CurrentVersion {
		return f, report, derrors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", f.Version, CurrentVersion)).
			WithContext("path", name).
			Build()
	}

	report.Issues = Validate(f)
	if err := report.Issues.Err(); err != nil {
		return f, report, err
	}
	return f, report, nil
}

// Decode parses data without normalization, defaults or validation.
// YAML and JSON input has its ${NAME} references expanded against the
// process environment first; HCL input reads the environment through the
// env object instead.
func Decode(data []byte, format Format, name string) (*File, error) {
	return decode(data, format, name, ExpandEnv)
}

func decode(data []byte, format Format, name string, expandFn func(string) string) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(strings.NewReader(expandFn(string(data))))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, decodeError(err, name)
		}
	case FormatJSON:
		dec := json.NewDecoder(strings.NewReader(expandFn(string(data))))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if err := dec.Decode(&f); err != nil {
			return nil, decodeError(err, name)
		}
		for i := range f.Integrations {
			if f.Integrations[i].Options != nil {
				plainNumbers(f.Integrations[i].Options)
			}
		}
	case FormatHCL:
		decoded, err := decodeHCL(data, name)
		if err != nil {
			return nil, decodeError(err, name)
		}
		f = *decoded
	default:
		return nil, derrors.ConfigError("unsupported configuration format").WithContext("format", string(format)).Build()
	}
	return &f, nil
}

func decodeError(err error, name string) error {
	return derrors.WrapError(err, derrors.CategoryConfig, "failed to decode configuration").
		Fatal().
		WithContext("path", name).
		Build()
}
