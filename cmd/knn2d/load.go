package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-sod/knn2d/internal/classifier"
	"github.com/go-sod/knn2d/internal/dataset"
	"github.com/go-sod/knn2d/internal/load"
	"github.com/spf13/cobra"
)

var loadPolicy string

var loadCmd = &cobra.Command{
	Use:   "load FILE",
	Short: "Validate a training file, or publish it to a server",
	Long: "Read and normalize FILE and print its summary. With --server the file " +
		"replaces the dataset the server classifies against.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := remoteFromFlags(cmd)
		if err != nil {
			return err
		}

		var summary load.Summary
		if r != nil {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("unable open %s: %w", args[0], err)
			}
			defer f.Close()
			s, err := r.load(cmd.Context(), f)
			if err != nil {
				return err
			}
			summary = *s
		} else {
			policy := dataset.Policy(strings.ToUpper(loadPolicy))
			if !policy.Valid() {
				return fmt.Errorf("unknown normalize policy: %s", loadPolicy)
			}
			ds, err := classifier.New(classifier.WithPolicy(policy)).LoadFile(args[0])
			if err != nil {
				return err
			}
			summary = load.Summarize(ds)
		}
		printSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadPolicy, "policy", string(dataset.PolicyZero), "Constant feature policy: zero or strict (local only)")
}

func printSummary(w io.Writer, s load.Summary) {
	_, _ = fmt.Fprintf(w, "dataset: %s\n", s.ID)
	_, _ = fmt.Fprintf(w, "records: %d\n", s.Size)
	_, _ = fmt.Fprintf(w, "labels:  %v\n", s.Labels)
	_, _ = fmt.Fprintf(w, "x range: [%g, %g]\n", s.Bounds.Min.X, s.Bounds.Max.X)
	_, _ = fmt.Fprintf(w, "y range: [%g, %g]\n", s.Bounds.Min.Y, s.Bounds.Max.Y)
}
