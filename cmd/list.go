package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored accounts",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		names := store.List()
		if len(names) == 0 {
			fmt.Println("No accounts found.")
			return
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%-20s %-14s %-15s %-10s %-20s\n",
			header("ACCOUNT"), header("AWS ID"), header("REGION"), header("TYPE"), header("LAST USED"))

		for _, name := range names {
			rec, err := store.Get(name)
			if err != nil {
				continue
			}
			kind := "permanent"
			if rec.IsTemporary() {
				kind = "temporary"
			}
			lastUsed := "never"
			if rec.LastUsed != nil {
				lastUsed = rec.LastUsed.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-20s %-14s %-15s %-10s %-20s\n",
				name, rec.AccountID, rec.Region, kind, lastUsed)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
