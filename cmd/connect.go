package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/ui"
	"github.com/marcoviana/awsvault/internal/vault"
)

var connectCmd = &cobra.Command{
	Use:   "connect [account]",
	Short: "Validate an account's credentials and mark it as current",
	Long: `Connect to a stored account. The credentials are checked against STS;
on success the discovered AWS account id is written back into the
record and the last-used timestamp is updated. Expired credentials are
rejected locally, without a remote call.`,
	Args: cobra.MaximumNArgs(1),
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
				fmt.Println("❌ No stored accounts found. Add one with: awsvault add")
				return
			}
			selected, err := ui.SelectAccount("Select Account", accounts)
			if err != nil {
				return
			}
			name = selected
		}

		_, err = ui.Spin(fmt.Sprintf("Connecting to %s...", name), func() (any, error) {
			return nil, coord.Connect(context.Background(), name)
		})
		switch {
		case err == nil:
			sess := coord.ActiveSession()
			id := sess.Identity()
			fmt.Printf("✅ Connected to '%s'\n", name)
			fmt.Printf("   AWS Account: %s\n", id.AccountID)
			fmt.Printf("   Principal:   %s\n", id.PrincipalARN)
			fmt.Printf("   Region:      %s\n", sess.Region())
			fmt.Println("\n💡 Export credentials for your shell with:")
			fmt.Printf("   eval $(awsvault export --account %s)\n", name)
		case errors.Is(err, vault.ErrNotFound):
			fmt.Printf("❌ Account '%s' not found\n", name)
		case errors.Is(err, vault.ErrAlreadyExpired):
			fmt.Printf("❌ Credentials for '%s' have expired. Remove and re-add the account.\n", name)
		case errors.Is(err, vault.ErrInvalidCredentials):
			fmt.Printf("❌ Credentials for '%s' rejected by remote validation\n", name)
		default:
			fmt.Printf("❌ Failed to connect to '%s': %v\n", name, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
