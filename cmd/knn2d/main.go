package main

import (
	"fmt"
	"os"

	"github.com/go-sod/knn2d/internal/shutdown"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "knn2d",
	Short:         "Classify 2-D points with k nearest neighbors",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Address of a running knn2d-srv, e.g. http://localhost:8787")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the server (overrides KNN2D_API_TOKEN env var)")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "Request timeout when talking to a server")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, done := shutdown.New()
	err := rootCmd.ExecuteContext(ctx)
	done()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
