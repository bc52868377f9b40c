package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/schema"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Schema  bool   `help:"Also check the file against the JSON Schema"`
	Variant string `help:"Check that this variant exists and derives cleanly"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	f, report, err := config.Load(root.Config)
	if report != nil {
		for _, w := range report.Warnings {
			_, _ = warningPrinter.Fprintf(g.Out, "%-7s ", "note")
			_, _ = fmt.Fprintln(g.Out, w)
		}
		printIssues(g.Out, report.Issues)
	}
	if err != nil {
		if report != nil && len(report.Issues.Errors()) > 0 {
			return derrors.ValidationError(fmt.Sprintf("%s has %d problem(s)", root.Config, len(report.Issues.Errors()))).Build()
		}
		return err
	}

	if v.Schema {
		problems, err := schema.ValidateFile(root.Config)
		if err != nil {
			return err
		}
		for _, p := range problems {
			_, _ = errorPrinter.Fprintf(g.Out, "%-7s ", "schema")
			_, _ = fmt.Fprintln(g.Out, p)
		}
		if len(problems) > 0 {
			return derrors.ValidationError(fmt.Sprintf("%s does not match the schema (%d problem(s))", root.Config, len(problems))).Build()
		}
	}

	if v.Variant != "" {
		if _, err := f.Resolve(v.Variant); err != nil {
			return err
		}
	}

	_, _ = successPrinter.Fprintf(g.Out, "%s is valid", root.Config)
	_, _ = fmt.Fprintf(g.Out, " (%d warning(s))\n", len(report.Warnings)+len(report.Issues.Warnings()))
	return nil
}
