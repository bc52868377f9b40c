// Package schema publishes a JSON Schema for docsite configuration files and
// validates documents against it.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

const (
	draft7 = "http://json-schema.org/draft-07/schema#"
	// ID identifies the published schema.
	ID = "https://git.home.luguber.info/inful/docsite/schema/config.json"
)

// Generate reflects the configuration file layout into a JSON Schema.
// Definitions are inlined so the document is self-contained.
func Generate() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&config.File{})
	s.Version = draft7
	s.ID = jsonschema.ID(ID)
	s.Title = "docsite configuration"
	return s
}

var compiled = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft7
	loader.Validate = true
	return loader.Compile(gojsonschema.NewGoLoader(Generate()))
})

// Validate checks a JSON document against the schema. It returns one line
// per violation; a nil slice means the document conforms.
func Validate(doc []byte) ([]string, error) {
	s, err := compiled()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to compile configuration schema").Build()
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "document is not valid JSON").Build()
	}
	if res.Valid() {
		return nil, nil
	}
	out := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		out = append(out, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return out, nil
}

// ValidateFile validates the raw contents of a configuration file before any
// normalization. YAML is converted to JSON first; HCL is decoded through the
// config package since it has no direct JSON form.
func ValidateFile(path string) ([]string, error) {
	format, ok := config.DetectFormat(path)
	if !ok {
		return nil, derrors.ConfigError("unsupported configuration format").WithContext("path", path).Build()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.NotFoundError("configuration file not found: " + path).Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").Build()
	}
	switch format {
	case config.FormatJSON:
		data = []byte(config.ExpandEnv(string(data)))
	case config.FormatYAML:
		var v any
		if err := yaml.NewDecoder(bytes.NewReader([]byte(config.ExpandEnv(string(data))))).Decode(&v); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to decode configuration").Build()
		}
		if v == nil {
			v = map[string]any{}
		}
		if data, err = json.Marshal(v); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryConfig, "configuration cannot be represented as JSON").Build()
		}
	case config.FormatHCL:
		f, err := config.Decode(data, format, path)
		if err != nil {
			return nil, err
		}
		if data, err = json.Marshal(f); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode configuration").Build()
		}
	}
	return Validate(data)
}

// JSON returns the indented schema document.
func JSON() ([]byte, error) {
	data, err := json.MarshalIndent(Generate(), "", "  ")
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode schema").Build()
	}
	return append(data, '\n'), nil
}
