package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"terlab/adapters/excel"
	"terlab/app"
	"terlab/domain/core"
	"terlab/domain/metric"
	"terlab/domain/stats"
	"terlab/internal/analysis/engagement"
	"terlab/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "terlab-cli",
		Short:         "Engagement metric and trigger/frame analysis from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newMetricCmd(),
		newAnalyzeCmd(),
		newDemoCmd(),
	)
	return rootCmd
}

func newMetricCmd() *cobra.Command {
	var counts metric.Counts

	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Compute the weighted engagement rate for one post",
		Long: `Compute the weighted engagement rate for one post.

Example: terlab-cli metric --likes 100 --bookmarks 10 --replies 5 --retweets 20 --quotes 2 --views 10000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if counts.Likes < 0 || counts.Bookmarks < 0 || counts.Replies < 0 ||
				counts.Retweets < 0 || counts.Quotes < 0 || counts.Views < 0 {
				return fmt.Errorf("counts must not be negative")
			}
			return writeJSON(cmd.OutOrStdout(), metric.Compute(counts))
		},
	}

	cmd.Flags().Int64Var(&counts.Likes, "likes", 0, "Like count")
	cmd.Flags().Int64Var(&counts.Bookmarks, "bookmarks", 0, "Bookmark count")
	cmd.Flags().Int64Var(&counts.Replies, "replies", 0, "Reply count")
	cmd.Flags().Int64Var(&counts.Retweets, "retweets", 0, "Retweet count")
	cmd.Flags().Int64Var(&counts.Quotes, "quotes", 0, "Quote count")
	cmd.Flags().Int64Var(&counts.Views, "views", 0, "View count")

	return cmd
}

type outputOptions struct {
	xlsxPath string
	markdown bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.xlsxPath, "xlsx", "", "Also write the chart tables to this workbook")
	cmd.Flags().BoolVar(&o.markdown, "markdown", false, "Print the interpretation as Markdown instead of the JSON report")
}

func newAnalyzeCmd() *cobra.Command {
	var out outputOptions
	var sheet string

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Run the full analysis over an .xlsx or .csv post file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := excel.NewDataReader(excel.ImportConfig{Sheet: sheet})
			result, err := reader.ReadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Read %d posts (%d rows, %d skipped)\n", len(result.Posts), result.Rows, result.Skipped)

			return emit(cmd.OutOrStdout(), engagement.Analyze(result.Posts), out)
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	return cmd
}

func newDemoCmd() *cobra.Command {
	var out outputOptions
	var postsPath string
	cfg := testkit.DefaultPostConfig()

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate synthetic posts and run them through the full pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PostCount < 0 {
				return fmt.Errorf("--posts must not be negative")
			}
			posts := testkit.NewPostGenerator(cfg).Generate(core.NewSessionID())

			if postsPath != "" {
				if err := writeFile(postsPath, func(w io.Writer) error { return excel.WritePosts(w, posts) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d synthetic posts to %s\n", len(posts), postsPath)
			}

			return emit(cmd.OutOrStdout(), engagement.Analyze(posts), out)
		},
	}

	out.register(cmd)
	cmd.Flags().IntVar(&cfg.PostCount, "posts", cfg.PostCount, "Number of synthetic posts")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for deterministic generation")
	cmd.Flags().StringVar(&postsPath, "posts-xlsx", "", "Write the generated posts to this workbook in import layout")
	return cmd
}

// emit prints the report and writes the optional workbook
func emit(w io.Writer, report *stats.Report, out outputOptions) error {
	if out.xlsxPath != "" {
		if err := writeFile(out.xlsxPath, func(f io.Writer) error { return excel.WriteReport(f, report) }); err != nil {
			return err
		}
	}

	if out.markdown {
		_, err := io.WriteString(w, app.InterpretationMarkdown(report))
		return err
	}
	return writeJSON(w, report)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
