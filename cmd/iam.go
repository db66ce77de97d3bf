package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/services"
)

var iamPathPrefix string

var iamCmd = &cobra.Command{
	Use:   "iam",
	Short: "IAM operations on the connected account",
}

var iamUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List IAM users",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}

		users, err := services.NewIAM(sess).ListUsers(ctx, iamPathPrefix)
		if err != nil {
			serviceFail(err)
		}
		if len(users) == 0 {
			fmt.Println("No users found.")
			return
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%-24s %-56s %-20s\n", header("NAME"), header("ARN"), header("CREATED"))
		fmt.Println(strings.Repeat("-", 102))
		for _, u := range users {
			fmt.Printf("%-24s %-56s %-20s\n", u.Name, truncateText(u.ARN, 54), u.CreatedAt)
		}
	},
}

var iamRolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List IAM roles",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}

		roles, err := services.NewIAM(sess).ListRoles(ctx, iamPathPrefix)
		if err != nil {
			serviceFail(err)
		}
		if len(roles) == 0 {
			fmt.Println("No roles found.")
			return
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%-32s %-56s %-20s\n", header("NAME"), header("ARN"), header("CREATED"))
		fmt.Println(strings.Repeat("-", 110))
		for _, r := range roles {
			fmt.Printf("%-32s %-56s %-20s\n", r.Name, truncateText(r.ARN, 54), r.CreatedAt)
		}
	},
}

func init() {
	iamCmd.PersistentFlags().StringVar(&iamPathPrefix, "path-prefix", "", "Filter by IAM path prefix")
	iamCmd.AddCommand(iamUsersCmd)
	iamCmd.AddCommand(iamRolesCmd)
	rootCmd.AddCommand(iamCmd)
}
