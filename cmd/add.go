package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/ui"
	"github.com/marcoviana/awsvault/internal/vault"
)

var (
	addName       string
	addAccessKey  string
	addSecretKey  string
	addToken      string
	addRegion     string
	addProfile    string
	addMFASerial  string
	addRoleARN    string
	addExternalID string
	addExpiresIn  time.Duration
	addOverwrite  bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an AWS account to the vault",
	Long: `Add an account to the encrypted store. The credentials are validated
against STS before they are accepted; the AWS account id is discovered
from the validation response, not supplied by you.`,
	Run: func(cmd *cobra.Command, args []string) {
		if addName == "" {
			name, err := ui.GetInput("Account Name", "prod", false)
			if err != nil || name == "" {
				fmt.Println("❌ Account name is required")
				return
			}
			addName = name
		}
		if addAccessKey == "" {
			v, err := ui.GetInput("Access Key ID", "AKIA...", false)
			if err != nil {
				return
			}
			addAccessKey = v
		}
		if addSecretKey == "" {
			v, err := ui.GetInput("Secret Access Key", "", true)
			if err != nil {
				return
			}
			addSecretKey = v
		}

		store, err := openStore()
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		rec := &vault.Record{
			AccessKeyID:     addAccessKey,
			SecretAccessKey: addSecretKey,
			SessionToken:    addToken,
			Region:          addRegion,
			ProfileName:     addProfile,
			MFASerial:       addMFASerial,
			RoleARN:         addRoleARN,
			ExternalID:      addExternalID,
		}
		if addExpiresIn > 0 {
			exp := time.Now().Add(addExpiresIn)
			rec.ExpiresAt = &exp
		}

		_, err = ui.Spin(fmt.Sprintf("Validating credentials for %s...", addName), func() (any, error) {
			return nil, store.Add(context.Background(), addName, rec, addOverwrite)
		})
		switch {
		case err == nil:
			saved, _ := store.Get(addName)
			fmt.Printf("✅ Account '%s' added (AWS account %s)\n", addName, saved.AccountID)
		case errors.Is(err, vault.ErrAccountExists):
			fmt.Printf("❌ Account '%s' already exists. Re-run with --overwrite to replace it.\n", addName)
		case errors.Is(err, vault.ErrInvalidCredentials):
			fmt.Printf("❌ Credentials for '%s' rejected by remote validation\n", addName)
		default:
			fmt.Printf("❌ Failed to add account '%s': %v\n", addName, err)
			os.Exit(1)
		}
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Friendly account name (unique)")
	addCmd.Flags().StringVar(&addAccessKey, "access-key-id", "", "AWS Access Key ID")
	addCmd.Flags().StringVar(&addSecretKey, "secret-access-key", "", "AWS Secret Access Key")
	addCmd.Flags().StringVar(&addToken, "session-token", "", "Session token (marks the account as temporary)")
	addCmd.Flags().StringVar(&addRegion, "region", "", "Default region for this account")
	addCmd.Flags().StringVar(&addProfile, "profile", "", "Profile name (cosmetic, defaults to the account name)")
	addCmd.Flags().StringVar(&addMFASerial, "mfa-serial", "", "MFA device serial (stored, not used)")
	addCmd.Flags().StringVar(&addRoleARN, "role-arn", "", "Role ARN for assume-role flows (stored, not used)")
	addCmd.Flags().StringVar(&addExternalID, "external-id", "", "External id for assume-role flows (stored, not used)")
	addCmd.Flags().DurationVar(&addExpiresIn, "expires-in", 0, "How long until these credentials expire (e.g. 1h); zero means never")
	addCmd.Flags().BoolVar(&addOverwrite, "overwrite", false, "Replace an existing account with the same name")
	rootCmd.AddCommand(addCmd)
}
