package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/vault"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print an account's credentials as shell export statements",
	Example: `  # Load credentials into the current shell
  eval $(awsvault export --account prod)`,
	Run: func(cmd *cobra.Command, args []string) {
		if accountFlag == "" {
			fmt.Fprintln(os.Stderr, "❌ You must specify --account to export")
			return
		}

		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		rec, err := store.Get(accountFlag)
		if err != nil {
			if errors.Is(err, vault.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "❌ Account '%s' not found\n", accountFlag)
				if names := store.List(); len(names) > 0 {
					fmt.Fprintln(os.Stderr, "\n💡 Available accounts:")
					for _, n := range names {
						fmt.Fprintf(os.Stderr, "   • %s\n", n)
					}
				}
				return
			}
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		if rec.IsExpired() {
			fmt.Fprintf(os.Stderr, "❌ Credentials for '%s' have expired\n", accountFlag)
			return
		}

		// Shell-compatible output on stdout, everything else on stderr
		fmt.Printf("export AWS_ACCESS_KEY_ID=%s\n", rec.AccessKeyID)
		fmt.Printf("export AWS_SECRET_ACCESS_KEY=%s\n", rec.SecretAccessKey)
		if rec.SessionToken != "" {
			fmt.Printf("export AWS_SESSION_TOKEN=%s\n", rec.SessionToken)
		}
		fmt.Printf("export AWS_DEFAULT_REGION=%s\n", rec.Region)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
