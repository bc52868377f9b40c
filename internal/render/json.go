package render

import (
	"encoding/json"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// JSON emits the canonical JSON form of the site value.
type JSON struct{}

func (JSON) Name() string     { return JSONTarget }
func (JSON) FileName() string { return "site.json" }

func (JSON) Render(cfg *site.Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to marshal site JSON").Build()
	}
	return append(data, '\n'), nil
}
