package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/student/leviathan/json"
	"github.com/student/leviathan/source"
	"github.com/student/leviathan/toml"
)

var errUnknownFormat = errors.New("unknown format")

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "parse {json|toml} FILE",
		Short:     "Parse a JSON or TOML file and report its shape",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"json", "toml"},
		RunE: func(_ *cobra.Command, args []string) error {
			return runParse(args[0], args[1])
		},
	}

	return cmd
}

func runParse(format, path string) error {
	data, err := source.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch format {
	case "json":
		return parseJSON(path, string(data))
	case "toml":
		return parseTOML(path, string(data))
	default:
		return fmt.Errorf("%w: %q (want json or toml)", errUnknownFormat, format)
	}
}

func parseJSON(path, src string) error {
	v, err := json.Parse(src)
	if err != nil {
		var perr *json.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s:%d:%d: %s", path, perr.Line, perr.Column, perr.Message)
		}

		return err
	}

	slog.Info("parsed json document", "file", path, "kind", v.Kind())

	return nil
}

func parseTOML(path, src string) error {
	v, err := toml.Parse(src)
	if err != nil {
		var perr *toml.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s:%d:%d: %s", path, perr.Line, perr.Column, perr.Message)
		}

		return err
	}

	tbl, _ := v.AsTable()
	slog.Info("parsed toml document", "file", path, "keys", len(tbl.Fields()))

	return nil
}
