package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/ui"
	"github.com/marcoviana/awsvault/internal/vault"
)

var removeCmd = &cobra.Command{
	Use:   "remove [account]",
	Short: "Remove an account from the vault",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, coord, err := openVault()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			accounts := store.List()
			if len(accounts) == 0 {
				fmt.Println("❌ No stored accounts found.")
				return
			}
			selected, err := ui.SelectAccount("Select Account to Remove", accounts)
			if err != nil {
				return
			}
			name = selected
		}

		// Removal goes through the coordinator so a connected account
		// can never leave a dangling session behind.
		if err := coord.RemoveAccount(name); err != nil {
			if errors.Is(err, vault.ErrNotFound) {
				fmt.Printf("❌ Account '%s' not found\n", name)
				return
			}
			fmt.Printf("❌ Failed to remove account '%s': %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("✅ Account '%s' removed\n", name)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
