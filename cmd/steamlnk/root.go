package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lobinuxsoft/steamlnk/internal/convert"
	"github.com/lobinuxsoft/steamlnk/internal/logger"
	"github.com/lobinuxsoft/steamlnk/pkg/version"
)

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	// Dropping a .url file onto the exe from Explorer is a normal launch.
	cobra.MousetrapHelpText = ""

	exitCode := 0
	root := newRootCmd(&exitCode)
	if shadowsSubcommand(root, args) {
		args = append([]string{"--"}, args...)
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return exitCode
}

// shadowsSubcommand reports whether the first argument names both a
// subcommand and an existing file, in which case the file wins.
func shadowsSubcommand(root *cobra.Command, args []string) bool {
	if len(args) == 0 {
		return false
	}
	name := args[0]
	known := name == "help"
	for _, sub := range root.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			known = true
		}
	}
	if !known {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func newRootCmd(exitCode *int) *cobra.Command {
	var verbose, dryRun bool

	cmd := &cobra.Command{
		Use:   "steamlnk <url_file>",
		Short: "Convert a Steam .url shortcut into a Windows .lnk",
		Long: `steamlnk reads a Steam internet shortcut (.url) and writes a native
Windows shortcut next to it that starts the game with steam.exe -applaunch.`,
		Version:       version.Full(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(cmd.ErrOrStderr(), verbose)
			defer log.Sync()

			c := convert.New(cmd.OutOrStdout(), log)
			c.DryRun = dryRun

			outcome := c.Run(args)
			log.Debug("conversion finished", zap.Stringer("outcome", outcome))
			*exitCode = outcome.ExitCode()
			return nil
		},
	}
	cmd.SetVersionTemplate("steamlnk {{.Version}}\n")
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the shortcut as YAML instead of writing it")

	cmd.AddCommand(newInspectCmd())
	return cmd
}
