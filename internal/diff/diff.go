// Package diff reports structural differences between two site values.
package diff

import (
	"encoding/json"

	jd "github.com/josephburnett/jd/lib"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Result holds the differences found by Compare.
type Result struct {
	diff jd.Diff
}

// Empty reports whether both values were identical.
func (r Result) Empty() bool { return len(r.diff) == 0 }

// Len is the number of changed paths.
func (r Result) Len() int { return len(r.diff) }

// Render formats the differences in jd's native patch format: one "@ path"
// line followed by "-" and "+" value lines per change.
func (r Result) Render() string { return r.diff.Render() }

// Compare diffs a against b through their JSON form. Sidebar and integration
// order are significant; map keys are not.
func Compare(a, b *site.Config) (Result, error) {
	left, err := node(a)
	if err != nil {
		return Result{}, err
	}
	right, err := node(b)
	if err != nil {
		return Result{}, err
	}
	return Result{diff: left.Diff(right)}, nil
}

func node(cfg *site.Config) (jd.JsonNode, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode configuration for diff").Build()
	}
	n, err := jd.ReadJsonString(string(data))
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to parse configuration for diff").Build()
	}
	return n, nil
}
