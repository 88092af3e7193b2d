// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"repoactivity/internal/dateutil"
	"repoactivity/internal/domain"
	"repoactivity/internal/gateway"
	"repoactivity/internal/report"
	"repoactivity/internal/usecase"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarizes repository activity within a date window",
	Long: `Summarizes activity on a single GitHub repository: the 30 most active
commit authors, pull request counts (open/closed/old) and issue counts
(open/closed/old), optionally restricted to a date window and branch.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		// Get other flags.
		repoStr, _ := cmd.Flags().GetString("repo")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		branch, _ := cmd.Flags().GetString("branch")
		asJSON, _ := cmd.Flags().GetBool("json")
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}

		ref, err := domain.ParseRepositoryRef(repoStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Malformed dates are not an error: a flag without a recognizable
		// YYYY-MM-DD substring behaves exactly like an absent one.
		window := dateutil.Window{
			Start: dateutil.ExtractDate(startStr),
			End:   dateutil.ExtractDate(endStr),
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		analyzer := usecase.NewAnalyzer(githubGateway, ref, window, branch, logger)

		// The three aggregations run sequentially; the whole run aborts on
		// the first failed request.
		topAuthors, err := analyzer.TopCommitAuthors(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rank commit authors: %v\n", err)
			os.Exit(1)
		}
		prSummary, err := analyzer.SummarizePullRequests(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to summarize pull requests: %v\n", err)
			os.Exit(1)
		}
		issueSummary, err := analyzer.SummarizeIssues(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to summarize issues: %v\n", err)
			os.Exit(1)
		}

		if asJSON {
			doc := report.Document{
				Repository:   ref,
				Branch:       branch,
				Start:        window.Start,
				End:          window.End,
				TopAuthors:   topAuthors,
				PullRequests: prSummary,
				Issues:       issueSummary,
			}
			if err := report.WriteJSON(os.Stdout, doc); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		report.WriteHeader(os.Stdout, ref, branch, window)
		report.WriteTopAuthors(os.Stdout, topAuthors)
		report.WriteSummary(os.Stdout, "PR", prSummary)
		report.WriteSummary(os.Stdout, "Issues", issueSummary)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("repo", "r", "", "Repository URL or owner/name (required)")
	analyzeCmd.MarkFlagRequired("repo")
	analyzeCmd.Flags().StringP("start", "s", "", "Window start date (YYYY-MM-DD)")
	analyzeCmd.Flags().StringP("end", "e", "", "Window end date (YYYY-MM-DD)")
	analyzeCmd.Flags().StringP("branch", "b", "master", "Branch to analyze")
	analyzeCmd.Flags().StringP("token", "t", "", "GitHub access token (defaults to GITHUB_TOKEN)")
	analyzeCmd.Flags().Bool("json", false, "Output the results as JSON")
}
