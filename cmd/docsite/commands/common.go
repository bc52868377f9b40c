// Package commands implements the docsite command line.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/version"
)

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "DOCSITE_LOG_LEVEL"

// Global is shared state passed to every command.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docsite.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text, json)" enum:"text,json" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write a starter configuration file"`
	Validate ValidateCmd `cmd:"" help:"Check the configuration and report every problem"`
	Render   RenderCmd   `cmd:"" help:"Render the configuration for a site builder"`
	Schema   SchemaCmd   `cmd:"" help:"Print the JSON Schema of the configuration file"`
	Diff     DiffCmd     `cmd:"" help:"Show how two variants or configuration files differ"`
	Sidebar  SidebarCmd  `cmd:"" help:"Inspect and edit the sidebar"`
	Variants VariantsCmd `cmd:"" help:"List deployment variants"`
	Watch    WatchCmd    `cmd:"" help:"Re-render whenever the configuration changes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if env := os.Getenv(LogLevelEnv); env != "" {
		if err := level.UnmarshalText([]byte(env)); err != nil {
			return derrors.ConfigError(fmt.Sprintf("invalid %s %q", LogLevelEnv, env)).Build()
		}
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// Options returns the kong options the docsite binary parses with.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("docsite"),
		kong.Description("Manage the configuration of a static documentation site and render it for the site builder."),
		kong.UsageOnError(),
		kong.Vars{
			"version": version.String(),
			"targets": strings.Join(render.Targets(), ", "),
		},
	}
}

var (
	errorPrinter   = color.New(color.FgRed)
	warningPrinter = color.New(color.FgYellow)
	successPrinter = color.New(color.FgGreen)
	faint          = color.New(color.Faint).SprintFunc()
)

// load reads the configuration and logs normalization warnings. On
// validation failure the returned error carries every issue.
func load(path string) (*config.File, error) {
	f, _, err := loadWithReport(path)
	return f, err
}

// loadWithReport is load that also hands back the report, which is non-nil
// whenever the file decoded, even if validation failed.
func loadWithReport(path string) (*config.File, *config.Report, error) {
	f, report, err := config.Load(path)
	if report != nil {
		for _, w := range report.Warnings {
			slog.Warn(w, logfields.Path(path))
		}
		for _, is := range report.Issues.Warnings() {
			slog.Warn(is.Message, logfields.Path(path), slog.String("field", is.Path))
		}
	}
	if err != nil {
		return nil, report, err
	}
	return f, report, nil
}

// resolve loads path and derives the configuration of variant ("" for the
// base configuration).
func resolve(path, variant string) (*site.Config, error) {
	f, err := load(path)
	if err != nil {
		return nil, err
	}
	return f.Resolve(variant)
}

func printIssues(w io.Writer, issues site.Issues) {
	for _, is := range issues {
		printer := errorPrinter
		if is.Severity == site.SeverityWarning {
			printer = warningPrinter
		}
		_, _ = printer.Fprintf(w, "%-7s ", is.Severity)
		_, _ = fmt.Fprintf(w, "%s %s\n", faint(is.Path), is.Message)
	}
}
