package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/skillgraph/pkg/config"
)

// annotationConfigOptional marks commands that run even when an explicit
// --config file does not exist yet.
const annotationConfigOptional = "config-optional"

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the defaults, unless one exists",
		Annotations: map[string]string{annotationConfigOptional: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.EnsureExists(c.resolvedConfigPath())
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Config ready")
			printFile(cmd.OutOrStdout(), path)
			printNextStep(cmd.OutOrStdout(), "Show effective settings", appName+" config show")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Print the config file path",
		Annotations: map[string]string{annotationConfigOptional: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(c.resolvedConfigPath() + "\n"))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Encode(c.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return cmd
}
