package cli

import (
	"context"
	"fmt"
	"sort"

	"ranking-insight/internal/app"
	"ranking-insight/internal/application/insights"
	"ranking-insight/internal/domain/ranking"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo ranking history for the last N days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be positive")
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				saved, err := a.Backfill(ctx, days)
				if err != nil {
					return err
				}
				printSaved(cmd, saved)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Number of days to generate")
	return cmd
}

func newCollectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Collect today's rankings from the configured provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				saved, err := a.Collect(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "provider: %s\n", a.Ranking.Provider().Name())
				printSaved(cmd, saved)
				return nil
			})
		},
	}
}

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Generate an Excel ranking report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				rep, err := a.GenerateReport(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report: %s (%d bytes)\n", rep.Path, rep.Size)
				if rep.Location != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "uploaded: %s\n", rep.Location)
				}
				return nil
			})
		},
	}
}

func newSummaryCmd(opts *options) *cobra.Command {
	var (
		category string
		days     int
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the focus-brand summary for a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !ranking.IsKnownCategory(category) {
				return fmt.Errorf("unknown category %q", category)
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				text, err := a.Summary(ctx, category, days)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", ranking.CategoryLipCare, "Category to summarize")
	cmd.Flags().IntVar(&days, "days", 30, "Number of days")
	return cmd
}

func newDigestCmd(opts *options) *cobra.Command {
	var (
		days int
		send bool
	)
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the ranking digest used for insight generation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				tables, err := a.Tables(ctx, days)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), insights.Digest(tables))
				if !send {
					return nil
				}
				sent, err := a.SendDigest(ctx)
				if err != nil {
					return err
				}
				if !sent {
					fmt.Fprintln(cmd.OutOrStdout(), "telegram not configured, nothing sent")
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Number of days")
	cmd.Flags().BoolVar(&send, "send", false, "Also push category summaries to Telegram")
	return cmd
}

func printSaved(cmd *cobra.Command, saved map[string]int) {
	cats := make([]string, 0, len(saved))
	for c := range saved {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	total := 0
	for _, c := range cats {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %d\n", c, saved[c])
		total += saved[c]
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %d records\n", total)
}
