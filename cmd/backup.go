package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var backupPath string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the encrypted credential store",
	Long: `Copy the encrypted store file byte-for-byte. The backup stays
encrypted with the same key; restoring it on another machine requires
importing that key first (awsvault secret show / secret import).`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		path, err := store.Backup(backupPath)
		if err != nil {
			fmt.Printf("❌ Backup failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Backup written to %s\n", path)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Restore the credential store from a backup",
	Long: `Replace the live store with a backup. The backup must decrypt with
the current key; the live file is itself backed up first, so a bad
restore never destroys data.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Print("⚠️  This will replace the current credential store. Type 'yes' to confirm: ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		if strings.TrimSpace(input) != "yes" {
			fmt.Println("❌ Operation cancelled.")
			return
		}

		if err := store.Restore(args[0]); err != nil {
			fmt.Printf("❌ Restore failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Store restored from %s (%d accounts)\n", args[0], store.Count())
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupPath, "path", "", "Backup file path (default: timestamped file in the backup dir)")
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
