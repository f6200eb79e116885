package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/student/leviathan/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "leviathan %s (%s, %s/%s, rev %s)\n",
				orUnknown(version.Version), version.GoVersion, version.GoOS, version.GoArch, version.Revision)

			return nil
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
