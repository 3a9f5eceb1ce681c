package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/jsmatch/lint"
)

var forceInit bool

// initCmd: jsmatch init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = defaultConfigFile
		}
		if err := initConfigurationFile(path, forceInit); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing configuration file")
}

// initConfigurationFile writes the default configuration, listing every
// built-in rule with its default severity.
func initConfigurationFile(configurationPath string, force bool) error {
	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configurationPath)
		}
	}

	d, err := yaml.Marshal(lint.DefaultConfig())
	if err != nil {
		return err
	}

	return os.WriteFile(configurationPath, d, 0o644)
}
