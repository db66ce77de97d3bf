package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/vault"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage the master encryption secret",
	Long: `Manage the secret that encrypts the credential store. Losing this
secret (and the keychain entry holding it) makes the store permanently
undecryptable; the only recovery is re-adding every account.`,
}

var secretShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the keychain secret",
	Run: func(cmd *cobra.Command, args []string) {
		if runtime.GOOS != "darwin" {
			fmt.Println("❌ Keychain integration is only available on macOS")
			return
		}

		secret, err := vault.LoadKey(cfg, "")
		if err != nil {
			fmt.Println("❌ No secret found in keychain or it couldn't be accessed.")
			return
		}

		fmt.Println("🔐 Your awsvault encryption secret:")
		fmt.Println(strings.Repeat("─", 64))
		fmt.Println(secret)
		fmt.Println(strings.Repeat("─", 64))
		fmt.Println("\n⚠️  KEEP THIS SAFE! You will need it to restore a backup on another machine.")
		fmt.Println("   To restore: awsvault secret import <key>")
	},
}

var secretImportCmd = &cobra.Command{
	Use:   "import [key]",
	Short: "Import a secret into the keychain",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if runtime.GOOS != "darwin" {
			fmt.Println("❌ Keychain integration is only available on macOS")
			return
		}

		var key string
		if len(args) > 0 {
			key = args[0]
		} else {
			key = readSecretLine("Enter secret key to import: ")
		}

		if key == "" {
			fmt.Println("❌ Secret key cannot be empty")
			return
		}

		if err := vault.StoreKey(cfg, key); err != nil {
			fmt.Printf("❌ Failed to store secret: %v\n", err)
			return
		}
		fmt.Println("✅ Secret imported successfully to keychain!")
	},
}

func init() {
	secretCmd.AddCommand(secretShowCmd)
	secretCmd.AddCommand(secretImportCmd)
	rootCmd.AddCommand(secretCmd)
}
