package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"graphdraw/config"
)

func configCmd(g *globals) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Print the configuration in effect as TOML. With --write, save it to the config file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if write {
				if err := config.Save(g.cfg, g.configPath); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				good.Fprintf(cmd.ErrOrStderr(), "✓ Config written to %s\n", g.configPath)
			}

			subtle.Fprintf(w, "# %s\n", g.configPath)
			return toml.NewEncoder(w).Encode(g.cfg)
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Save the effective configuration")
	return cmd
}
