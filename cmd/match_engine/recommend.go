package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/features"
	"github.com/jonathan/talent-match/internal/logger"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/present"
	"github.com/jonathan/talent-match/internal/types"
)

var (
	recommendConfigPath string
	recommendSkills     []string
	recommendLocation   string
	recommendIndustry   string
	recommendYears      float64
	recommendQuery      string
	recommendLimit      int
	recommendJSON       bool
	recommendVerbose    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Run a one-off recommendation from the command line",
}

var recommendJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Recommend jobs for a seeker profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRecommend(types.AudienceJobSeeker)
	},
}

var recommendCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Recommend candidates for an employer profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRecommend(types.AudienceEmployer)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{recommendJobsCmd, recommendCandidatesCmd} {
		cmd.Flags().StringVar(&recommendConfigPath, "config", "", "Path to config.json file")
		cmd.Flags().StringSliceVar(&recommendSkills, "skills", nil, "Profile skills (repeatable or comma separated)")
		cmd.Flags().StringVar(&recommendLocation, "location", "", "Profile location")
		cmd.Flags().StringVar(&recommendIndustry, "industry", "", "Profile industry")
		cmd.Flags().Float64Var(&recommendYears, "years", 0, "Years of experience")
		cmd.Flags().StringVarP(&recommendQuery, "query", "q", "", "Free-form request text, supports a skills: marker")
		cmd.Flags().IntVarP(&recommendLimit, "limit", "l", 5, "Maximum results")
		cmd.Flags().BoolVar(&recommendJSON, "json", false, "Print results as JSON")
		cmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print the extracted profile and score breakdowns")
		recommendCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(audience types.Audience) error {
	ctx := context.Background()

	cfg, err := loadConfig(recommendConfigPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, recommendVerbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	deps, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	userCtx := buildUserContext()
	printer := observability.NewPrinter(os.Stdout)
	if recommendVerbose {
		printer.PrintProfile(features.Extract(userCtx))
	}

	var matches []types.Match
	if audience == types.AudienceJobSeeker {
		matches, err = deps.service.RecommendJobs(ctx, userCtx, recommendLimit, recommendQuery)
	} else {
		matches, err = deps.service.RecommendCandidates(ctx, userCtx, recommendLimit, recommendQuery)
	}
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	items, summary := present.PrepareMatches(matches, audience)

	if recommendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	printer.PrintMatches(items)
	if recommendVerbose {
		for _, item := range items {
			printer.PrintScoreBreakdown(item)
		}
	}
	fmt.Println()
	fmt.Println(summary)
	return nil
}

func buildUserContext() map[string]any {
	userCtx := make(map[string]any)
	if len(recommendSkills) > 0 {
		userCtx["skills"] = recommendSkills
	}
	if recommendLocation != "" {
		userCtx["location"] = recommendLocation
	}
	if recommendIndustry != "" {
		userCtx["industry"] = recommendIndustry
	}
	if recommendYears > 0 {
		userCtx["experience_years"] = recommendYears
	}
	return userCtx
}
