package cmd

import (
	"fmt"

	"github.com/spigell/cv-analyzer/internal/api"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the analysis service url",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)

		apiURL := viper.GetString("api-url")
		if apiURL == "" {
			apiURL = api.DefaultAPIURL
		}
		fmt.Printf("api url: %s\n", apiURL)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
