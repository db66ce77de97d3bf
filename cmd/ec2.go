package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/services"
)

var (
	ec2State     string
	ec2StopForce bool
)

var ec2Cmd = &cobra.Command{
	Use:   "ec2",
	Short: "EC2 operations on the connected account",
}

var ec2InstancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List EC2 instances",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}

		instances, err := services.NewEC2(sess).ListInstances(ctx, ec2State)
		if err != nil {
			serviceFail(err)
		}
		if len(instances) == 0 {
			fmt.Println("No instances found.")
			return
		}

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%-20s %-20s %-12s %-10s %-16s %-16s\n",
			header("ID"), header("NAME"), header("TYPE"),
			header("STATE"), header("PRIVATE IP"), header("PUBLIC IP"))
		fmt.Println(strings.Repeat("-", 96))
		for _, inst := range instances {
			fmt.Printf("%-20s %-20s %-12s %-10s %-16s %-16s\n",
				inst.ID, truncateText(inst.Name, 18), inst.Type,
				inst.State, inst.PrivateIP, inst.PublicIP)
		}
	},
}

var ec2StartCmd = &cobra.Command{
	Use:   "start <instance-id>",
	Short: "Start an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}
		if err := services.NewEC2(sess).StartInstance(ctx, args[0]); err != nil {
			serviceFail(err)
		}
		fmt.Printf("✅ Instance %s starting\n", args[0])
	},
}

var ec2StopCmd = &cobra.Command{
	Use:   "stop <instance-id>",
	Short: "Stop an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}
		if err := services.NewEC2(sess).StopInstance(ctx, args[0], ec2StopForce); err != nil {
			serviceFail(err)
		}
		fmt.Printf("✅ Instance %s stopping\n", args[0])
	},
}

var ec2RebootCmd = &cobra.Command{
	Use:   "reboot <instance-id>",
	Short: "Reboot an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}
		if err := services.NewEC2(sess).RebootInstance(ctx, args[0]); err != nil {
			serviceFail(err)
		}
		fmt.Printf("✅ Instance %s rebooting\n", args[0])
	},
}

func init() {
	ec2InstancesCmd.Flags().StringVar(&ec2State, "state", "", "Filter by state (running, stopped, ...)")
	ec2StopCmd.Flags().BoolVar(&ec2StopForce, "force", false, "Force stop")
	ec2Cmd.AddCommand(ec2InstancesCmd)
	ec2Cmd.AddCommand(ec2StartCmd)
	ec2Cmd.AddCommand(ec2StopCmd)
	ec2Cmd.AddCommand(ec2RebootCmd)
	rootCmd.AddCommand(ec2Cmd)
}
