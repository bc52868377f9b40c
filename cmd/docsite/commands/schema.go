package commands

import (
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/foundation/fsutil"
	"git.home.luguber.info/inful/docsite/internal/schema"
)

// SchemaCmd implements the 'schema' command.
type SchemaCmd struct {
	Out string `short:"o" help:"Write the schema to this file instead of stdout" type:"path"`
}

func (s *SchemaCmd) Run(g *Global, _ *CLI) error {
	data, err := schema.JSON()
	if err != nil {
		return err
	}
	if s.Out == "" {
		_, err = g.Out.Write(data)
		return err
	}
	if err := fsutil.WriteFileAtomic(s.Out, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write schema").
			WithContext("path", s.Out).Build()
	}
	return nil
}
