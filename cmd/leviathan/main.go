// Command leviathan parses, converts, and indexes JSON/TOML documents
// using this module's value model and containers.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/student/leviathan/log"
	"github.com/student/leviathan/profile"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	var prof *profile.Profiler
	var diag *log.DiagnosticsCollector

	root := &cobra.Command{
		Use:           "leviathan",
		Short:         "Parse, convert, and index JSON/TOML documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			pub := log.NewPublisher()
			diag = log.NewDiagnosticsCollector(pub)

			handler, err := logCfg.NewHandler(io.MultiWriter(os.Stderr, pub))
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			prof = profileCfg.NewProfiler()

			return prof.Start()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if err := prof.Stop(); err != nil {
				return err
			}

			count := diag.Count()

			if err := diag.Close(); err != nil {
				return err
			}

			slog.Info("command diagnostics", "log_records", count)

			return nil
		},
	}

	logCfg.RegisterFlags(root.PersistentFlags())
	profileCfg.RegisterFlags(root.PersistentFlags())

	if err := logCfg.RegisterCompletions(root); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := profileCfg.RegisterCompletions(root); err != nil {
		fmt.Fprintf(os.Stderr, "register profile completions: %v\n", err)
	}

	root.AddCommand(newParseCommand())
	root.AddCommand(newConvertCommand())
	root.AddCommand(newIndexCommand())
	root.AddCommand(newVersionCommand())

	return root
}
