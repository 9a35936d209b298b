package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tubegrab/tubegrab/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		path, _ := config.ConfigPath()
		color.Green("Created %s", path)
		fmt.Printf("Set provider.api_key (or export %s) to enable the primary provider.\n", config.EnvAPIKey)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
