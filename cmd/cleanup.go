package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove all expired credentials from the vault",
	Long: `Remove every account whose credentials are past their expiry.
Permanent accounts (no expiry) are never touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		removed, err := store.CleanupExpired()
		if err != nil {
			fmt.Printf("❌ Cleanup failed: %v\n", err)
			os.Exit(1)
		}
		if len(removed) == 0 {
			fmt.Println("No expired credentials found.")
			return
		}
		fmt.Printf("✅ Removed %d expired account(s):\n", len(removed))
		for _, name := range removed {
			fmt.Printf("   • %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
