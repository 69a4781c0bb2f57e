package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lobinuxsoft/steamlnk/pkg/lnk"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <lnk_file>",
		Short: "Print the target, arguments, icon and working directory of a .lnk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := lnk.ReadFile(args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(spec)
		},
	}
}
