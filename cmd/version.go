package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("awsvault version %s\n", version.Current)

		latest, url, err := version.FetchLatest()
		if err != nil {
			fmt.Printf("Unable to check for updates: %v\n", err)
			return
		}

		if version.IsNewer(latest, version.Current) {
			fmt.Printf("\n💡 Update available: %s → %s\n", version.Current, latest)
			fmt.Printf("   Download: %s\n", url)
		} else {
			fmt.Println("✅ You're running the latest version")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
