package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Clear the current session",
	Long: `Disconnect from the current account. Sessions only live for the
duration of a single awsvault process, so this mostly matters for
shells that still carry exported credentials: unset AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN there.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, coord, err := openVault()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		coord.Disconnect()
		fmt.Println("✅ Disconnected")
		fmt.Println("\n💡 If you exported credentials, clear them with:")
		fmt.Println("   unset AWS_ACCESS_KEY_ID AWS_SECRET_ACCESS_KEY AWS_SESSION_TOKEN")
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
