package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/logger"
	"github.com/jonathan/talent-match/internal/retrieval"
	"github.com/jonathan/talent-match/internal/types"
)

// seedConcurrency bounds parallel inserts so the embedding provider is not
// hammered with simultaneous requests.
const seedConcurrency = 4

var (
	seedConfigPath string
	seedFile       string
	seedSkipVector bool
	seedVerbose    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load jobs and candidates from a JSON file into the database and vector store",
	Long: `Reads a JSON file of the form {"jobs": [...], "candidates": [...]} and
inserts each record into PostgreSQL, then embeds and indexes it in Chroma.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedConfigPath, "config", "", "Path to config.json file")
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the seed JSON file (required)")
	seedCmd.Flags().BoolVar(&seedSkipVector, "skip-vector", false, "Insert into the database only, skip vector indexing")
	seedCmd.Flags().BoolVarP(&seedVerbose, "verbose", "v", false, "Enable debug logging")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}

// seedRecord is one entry of the seed file, shared by jobs and candidates.
type seedRecord struct {
	Title           string         `json:"title,omitempty"`
	Company         string         `json:"company,omitempty"`
	Name            string         `json:"name,omitempty"`
	CurrentTitle    string         `json:"current_title,omitempty"`
	Location        string         `json:"location,omitempty"`
	Industry        string         `json:"industry,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	ExperienceYears *float64       `json:"experience_years,omitempty"`
	Description     string         `json:"description,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	Attrs           map[string]any `json:"attrs,omitempty"`
}

type seedFileContent struct {
	Jobs       []seedRecord `json:"jobs"`
	Candidates []seedRecord `json:"candidates"`
}

func runSeed(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(seedConfigPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, seedVerbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	var content seedFileContent
	if err := json.Unmarshal(data, &content); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(content.Jobs) == 0 && len(content.Candidates) == 0 {
		return fmt.Errorf("seed file contains no jobs or candidates")
	}

	deps, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	if !seedSkipVector {
		if err := deps.vectors.EnsureCollection(ctx, cfg.JobCollection); err != nil {
			return err
		}
		if err := deps.vectors.EnsureCollection(ctx, cfg.CandidateCollection); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)

	for _, record := range content.Jobs {
		g.Go(func() error {
			return seedJob(gctx, deps, cfg.JobCollection, record, log)
		})
	}
	for _, record := range content.Candidates {
		g.Go(func() error {
			return seedCandidate(gctx, deps, cfg.CandidateCollection, record, log)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Info("seeding complete",
		zap.Int("jobs", len(content.Jobs)),
		zap.Int("candidates", len(content.Candidates)))
	return nil
}

func seedJob(ctx context.Context, deps *dependencies, collection string, record seedRecord, log *zap.Logger) error {
	job, err := deps.database.CreateJob(ctx, &db.JobCreateInput{
		Title:           record.Title,
		Company:         record.Company,
		Location:        record.Location,
		Industry:        record.Industry,
		Skills:          record.Skills,
		ExperienceYears: record.ExperienceYears,
		Description:     record.Description,
		Attrs:           record.Attrs,
	})
	if err != nil {
		return err
	}
	log.Debug("job inserted", zap.String("id", job.ID.String()), zap.String("title", job.Title))

	if seedSkipVector {
		return nil
	}
	match := job.ToMatch()
	return deps.vectors.Upsert(ctx, collection, match.ID, seedDocument(match), seedMetadata(match))
}

func seedCandidate(ctx context.Context, deps *dependencies, collection string, record seedRecord, log *zap.Logger) error {
	cand, err := deps.database.CreateCandidate(ctx, &db.CandidateCreateInput{
		Name:            record.Name,
		CurrentTitle:    record.CurrentTitle,
		Location:        record.Location,
		Industry:        record.Industry,
		Skills:          record.Skills,
		ExperienceYears: record.ExperienceYears,
		Summary:         record.Summary,
		Attrs:           record.Attrs,
	})
	if err != nil {
		return err
	}
	log.Debug("candidate inserted", zap.String("id", cand.ID.String()), zap.String("name", cand.Name))

	if seedSkipVector {
		return nil
	}
	match := cand.ToMatch()
	return deps.vectors.Upsert(ctx, collection, match.ID, seedDocument(match), seedMetadata(match))
}

// seedDocument builds the text that gets embedded for a record.
func seedDocument(m types.Match) string {
	return retrieval.DocumentText(m)
}

// seedMetadata builds the flat metadata stored alongside the embedding. The
// query path reads these fields back out of search responses.
func seedMetadata(m types.Match) map[string]any {
	meta := map[string]any{
		"id":    m.ID,
		"kind":  string(m.Kind),
		"title": m.Title,
	}
	if m.Company != "" {
		meta["company"] = m.Company
	}
	if m.Location != "" {
		meta["location"] = m.Location
	}
	if m.Industry != "" {
		meta["industry"] = m.Industry
	}
	if len(m.Skills) > 0 {
		// Chroma metadata values must be scalar.
		meta["skills"] = strings.Join(m.Skills, ", ")
	}
	if m.ExperienceYears != nil {
		meta["experience_years"] = *m.ExperienceYears
	}
	if m.Summary != "" {
		meta["summary"] = m.Summary
	}
	return meta
}
