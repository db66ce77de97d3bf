package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/services"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Lambda operations on the connected account",
}

var lambdaFunctionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List Lambda functions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}

		functions, err := services.NewLambda(sess).ListFunctions(ctx)
		if err != nil {
			serviceFail(err)
		}
		if len(functions) == 0 {
			fmt.Println("No functions found.")
			return
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%-36s %-14s %-8s %-8s %-12s\n",
			header("NAME"), header("RUNTIME"), header("MEM"), header("TIMEOUT"), header("SIZE"))
		fmt.Println(strings.Repeat("-", 82))
		for _, fn := range functions {
			fmt.Printf("%-36s %-14s %-8d %-8d %-12d\n",
				truncateText(fn.Name, 34), fn.Runtime, fn.MemorySize, fn.Timeout, fn.CodeSize)
		}
	},
}

var lambdaFunctionCmd = &cobra.Command{
	Use:   "function <name>",
	Short: "Show one Lambda function",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}

		fn, err := services.NewLambda(sess).GetFunction(ctx, args[0])
		if err != nil {
			serviceFail(err)
		}
		jsonData, _ := json.MarshalIndent(fn, "", "  ")
		fmt.Println(string(jsonData))
	},
}

func init() {
	lambdaCmd.AddCommand(lambdaFunctionsCmd)
	lambdaCmd.AddCommand(lambdaFunctionCmd)
	rootCmd.AddCommand(lambdaCmd)
}
