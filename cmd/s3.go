package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcoviana/awsvault/internal/services"
)

var (
	s3Prefix string
	s3Max    int32
)

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "S3 operations on the connected account",
}

var s3BucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List S3 buckets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}

		buckets, err := services.NewS3(sess).ListBuckets(ctx)
		if err != nil {
			serviceFail(err)
		}
		if len(buckets) == 0 {
			fmt.Println("No buckets found.")
			return
		}
		for _, b := range buckets {
			fmt.Printf("📦 %-48s %s\n", b.Name, b.CreatedAt)
		}
	},
}

var s3ObjectsCmd = &cobra.Command{
	Use:   "objects <bucket>",
	Short: "List objects in a bucket",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess, err := connectedSession(ctx)
		if err != nil {
			serviceFail(err)
		}

		objects, err := services.NewS3(sess).ListObjects(ctx, args[0], s3Prefix, s3Max)
		if err != nil {
			serviceFail(err)
		}
		if len(objects) == 0 {
			fmt.Println("No objects found.")
			return
		}
		for _, o := range objects {
			fmt.Printf("%-64s %12d  %s\n", truncateText(o.Key, 62), o.Size, o.LastModified)
		}
	},
}

func init() {
	s3ObjectsCmd.Flags().StringVar(&s3Prefix, "prefix", "", "Key prefix filter")
	s3ObjectsCmd.Flags().Int32Var(&s3Max, "max", 100, "Maximum number of objects to list")
	s3Cmd.AddCommand(s3BucketsCmd)
	s3Cmd.AddCommand(s3ObjectsCmd)
	rootCmd.AddCommand(s3Cmd)
}
