package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/student/leviathan/convert"
	"github.com/student/leviathan/json"
	"github.com/student/leviathan/source"
	"github.com/student/leviathan/toml"
)

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "convert {json2toml|toml2json} FILE",
		Short:     "Convert a JSON file to TOML or a TOML file to JSON",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"json2toml", "toml2json"},
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(args[0], args[1])
		},
	}

	return cmd
}

func runConvert(direction, path string) error {
	data, err := source.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch direction {
	case "json2toml":
		return convertJSONToTOML(path, string(data))
	case "toml2json":
		return convertTOMLToJSON(path, string(data))
	default:
		return fmt.Errorf("%w: %q (want json2toml or toml2json)", errUnknownFormat, direction)
	}
}

func convertJSONToTOML(path, src string) error {
	jv, err := json.Parse(src)
	if err != nil {
		var perr *json.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s:%d:%d: %s", path, perr.Line, perr.Column, perr.Message)
		}

		return err
	}

	fmt.Println(toml.Format(convert.ToTOML(jv)))

	return nil
}

func convertTOMLToJSON(path, src string) error {
	tv, err := toml.Parse(src)
	if err != nil {
		var perr *toml.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s:%d:%d: %s", path, perr.Line, perr.Column, perr.Message)
		}

		return err
	}

	fmt.Println(json.Format(convert.ToJSON(tv)))

	return nil
}
