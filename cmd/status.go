package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/vault"
)

var statusJSON bool

type accountStatus struct {
	Account   string `json:"account"`
	AccountID string `json:"account_id,omitempty"`
	Region    string `json:"region"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Remaining string `json:"remaining,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show all stored accounts with expiration and remaining time",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		names := store.List()
		if len(names) == 0 {
			fmt.Println("No stored accounts found.")
			return
		}

		now := time.Now()
		rows := make([]accountStatus, 0, len(names))
		for _, name := range names {
			rec, err := store.Get(name)
			if err != nil {
				continue
			}
			rows = append(rows, formatStatus(rec, now))
		}

		if statusJSON {
			jsonData, _ := json.MarshalIndent(rows, "", "  ")
			fmt.Println(string(jsonData))
			return
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%-20s %-14s %-15s %-25s %-15s %-10s\n",
			header("ACCOUNT"), header("AWS ID"), header("REGION"),
			header("EXPIRATION"), header("REMAINING"), header("STATUS"))
		fmt.Println(strings.Repeat("-", 105))

		for _, row := range rows {
			statusColor := color.New(color.FgGreen).SprintFunc()
			if row.Status == "EXPIRED" {
				statusColor = color.New(color.FgYellow).SprintFunc()
			}
			exp := row.ExpiresAt
			if exp == "" {
				exp = "-"
			}
			remaining := row.Remaining
			if remaining == "" {
				remaining = "-"
			}
			fmt.Printf("%-20s %-14s %-15s %-25s %-15s %-10s\n",
				row.Account, row.AccountID, row.Region, exp, remaining, statusColor(row.Status))
		}
	},
}

func formatStatus(rec *vault.Record, now time.Time) accountStatus {
	row := accountStatus{
		Account:   rec.AccountName,
		AccountID: rec.AccountID,
		Region:    rec.Region,
		Status:    "ACTIVE",
	}
	if rec.ExpiresAt == nil {
		row.Status = "PERMANENT"
		return row
	}
	row.ExpiresAt = rec.ExpiresAt.Format("2006-01-02 15:04:05")
	if rec.IsExpired() {
		row.Status = "EXPIRED"
		row.Remaining = "Expired"
		return row
	}
	diff := rec.ExpiresAt.Sub(now)
	h := int(diff.Hours())
	m := int(diff.Minutes()) % 60
	row.Remaining = fmt.Sprintf("%dh%dm left", h, m)
	return row
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output results in JSON format for automation")
	rootCmd.AddCommand(statusCmd)
}
