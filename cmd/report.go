// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jollyroger/weekly-summary/internal/domain"
	"github.com/jollyroger/weekly-summary/internal/gateway"
	"github.com/jollyroger/weekly-summary/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints the weekly ticket and pull-request summary",
	Long: `Fetches last week's Trac ticket activity and GitHub pull-request
activity, aggregates both, and prints the combined report to standard
output. A GITHUB_TOKEN environment variable is used if set; without one
the GitHub requests run unauthenticated against lower rate limits.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags)
		if verbose {
			logger.SetOutput(os.Stderr)
		}

		tracURL, _ := cmd.Flags().GetString("trac-url")
		apiURL, _ := cmd.Flags().GetString("github-api-url")
		org, _ := cmd.Flags().GetString("org")
		repo, _ := cmd.Flags().GetString("repo")
		token := os.Getenv("GITHUB_TOKEN")

		window := domain.LastWeek(time.Now())

		trac := gateway.NewTracGateway(tracURL, logger)
		githubGateway, err := gateway.NewGitHubGateway(apiURL, token, org, repo, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}

		reporter := usecase.NewReporter(trac, githubGateway, logger)
		report, err := reporter.Report(ctx, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build weekly summary: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(report)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("trac-url", "http://trac.buildbot.net", "Base URL of the Trac instance")
	reportCmd.Flags().String("github-api-url", gateway.DefaultGitHubAPIURL, "Base URL of the GitHub REST API")
	reportCmd.Flags().StringP("org", "o", "buildbot", "GitHub organization of the repository")
	reportCmd.Flags().StringP("repo", "r", "buildbot", "GitHub repository to summarize")
}
