package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns",
		Aliases: []string{"pattern"},
		Short:   "Manage learned categorization patterns",
	}

	cmd.AddCommand(patternsListCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learned patterns with their confidence and usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			patterns, err := store.GetPatterns(ctx, viper.GetString("user"))
			if err != nil {
				return fmt.Errorf("failed to get patterns: %w", err)
			}

			if len(patterns) == 0 {
				slog.Info("No learned patterns yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PATTERN\tCATEGORY\tCONFIDENCE\tUSES")
			for _, p := range patterns {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n",
					p.DescriptionPattern, p.SuggestedCategory, p.ConfidenceScore, p.UsageCount)
			}
			return w.Flush()
		},
	}
}
