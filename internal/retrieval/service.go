// Package retrieval orchestrates the multi-tier fetch pipeline behind job
// and candidate recommendations: vector search first, direct metadata
// queries second, a recency catalog as the last resort.
package retrieval

import (
	"context"

	"github.com/jonathan/talent-match/internal/features"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/jonathan/talent-match/internal/vectorstore"
	"go.uber.org/zap"
)

// Tier tuning constants.
const (
	// defaultLimit applies when the caller asks for zero or fewer results.
	defaultLimit = 5
	// metadataTierCap bounds how many records the metadata tier pulls
	// from the document store before ranking.
	metadataTierCap = 120
	// catalogScore is the flat score assigned to catalog-tier results,
	// which were never actually matched.
	catalogScore = 0.35
)

// VectorSearcher is the nearest-neighbor search collaborator. Its response
// must be treated as optionally malformed.
type VectorSearcher interface {
	Query(ctx context.Context, collection, queryText string, limit int, where map[string]string) (*vectorstore.QueryResponse, error)
}

// DocumentStore is the durable record collaborator backing the metadata
// and catalog tiers.
type DocumentStore interface {
	ListActiveJobs(ctx context.Context, limit int) ([]types.Match, error)
	ListRecentJobs(ctx context.Context, limit int) ([]types.Match, error)
	ListOpenCandidates(ctx context.Context, limit int) ([]types.Match, error)
	ListRecentCandidates(ctx context.Context, limit int) ([]types.Match, error)
}

// Config holds the retrieval service configuration.
type Config struct {
	JobCollection       string
	CandidateCollection string
	Weights             scoring.Weights
}

// Service runs the retrieval pipeline. It holds no per-request state;
// every call receives fresh inputs and returns fresh outputs.
type Service struct {
	vectors VectorSearcher
	store   DocumentStore
	ranker  *ranking.Ranker
	cfg     Config
	log     *zap.Logger
}

// New creates a retrieval service. Collaborators are injected so tests can
// substitute fakes.
func New(vectors VectorSearcher, store DocumentStore, cfg Config, log *zap.Logger) *Service {
	if cfg.JobCollection == "" {
		cfg.JobCollection = "jobs"
	}
	if cfg.CandidateCollection == "" {
		cfg.CandidateCollection = "candidates"
	}
	zero := scoring.Weights{}
	if cfg.Weights == zero {
		cfg.Weights = scoring.DefaultWeights()
	}
	return &Service{
		vectors: vectors,
		store:   store,
		ranker:  ranking.New(cfg.Weights),
		cfg:     cfg,
		log:     log,
	}
}

// RecommendJobs returns ranked job matches for a seeker context. Collaborator
// failures degrade through the tier chain instead of propagating; an empty
// result means genuinely nothing was found. The only returned error is
// context cancellation, in which case partial results are discarded.
func (s *Service) RecommendJobs(ctx context.Context, userCtx map[string]any, limit int, query string) ([]types.Match, error) {
	return s.recommend(ctx, recommendRequest{
		kind:       types.KindJob,
		collection: s.cfg.JobCollection,
		baseline:   features.Extract(userCtx),
		queryText:  BuildSeekerQuery(userCtx, query),
		hints:      ExtractSkillHints(query),
		limit:      limit,
		rank:       s.ranker.JobMatches,
		listActive: s.store.ListActiveJobs,
		listRecent: s.store.ListRecentJobs,
	})
}

// RecommendCandidates is the employer-side mirror of RecommendJobs.
func (s *Service) RecommendCandidates(ctx context.Context, userCtx map[string]any, limit int, query string) ([]types.Match, error) {
	return s.recommend(ctx, recommendRequest{
		kind:       types.KindCandidate,
		collection: s.cfg.CandidateCollection,
		baseline:   features.Extract(userCtx),
		queryText:  BuildEmployerQuery(userCtx, query),
		hints:      ExtractSkillHints(query),
		limit:      limit,
		rank:       s.ranker.CandidateMatches,
		listActive: s.store.ListOpenCandidates,
		listRecent: s.store.ListRecentCandidates,
	})
}

// recommendRequest bundles the per-call parameters a tier needs.
type recommendRequest struct {
	kind       types.Kind
	collection string
	baseline   features.Set
	queryText  string
	hints      []string
	limit      int
	rank       func(features.Set, []types.Match) []types.Match
	listActive func(context.Context, int) ([]types.Match, error)
	listRecent func(context.Context, int) ([]types.Match, error)
}

// recommend walks the tiers in order, short-circuiting on the first one
// that yields usable results. Tier errors are logged and treated as empty;
// either a tier fully completes or it contributes nothing.
func (s *Service) recommend(ctx context.Context, req recommendRequest) ([]types.Match, error) {
	if req.limit <= 0 {
		req.limit = defaultLimit
	}
	// Hints widen the skill set for this request only.
	req.baseline = mergeHints(req.baseline, req.hints)

	matches, err := s.vectorTier(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("vector tier unavailable, falling back",
			zap.String("collection", req.collection), zap.String("operation", "query"))
		s.log.Debug("vector tier error detail",
			zap.String("collection", req.collection), zap.Error(err))
	}
	if len(matches) > 0 {
		return matches, nil
	}

	matches, err = s.metadataTier(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("metadata tier unavailable, falling back",
			zap.String("kind", string(req.kind)), zap.String("operation", "find"))
		s.log.Debug("metadata tier error detail",
			zap.String("kind", string(req.kind)), zap.Error(err))
	}
	if len(matches) > 0 {
		return matches, nil
	}

	matches, err = s.catalogTier(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("catalog tier unavailable",
			zap.String("kind", string(req.kind)), zap.String("operation", "find"))
		s.log.Debug("catalog tier error detail",
			zap.String("kind", string(req.kind)), zap.Error(err))
		return []types.Match{}, nil
	}
	return matches, nil
}

func mergeHints(set features.Set, hints []string) features.Set {
	if len(hints) == 0 {
		return set
	}
	merged := set
	merged.Skills = append([]string(nil), set.Skills...)
	seen := make(map[string]bool, len(merged.Skills))
	for _, skill := range merged.Skills {
		seen[skill] = true
	}
	for _, hint := range hints {
		if !seen[hint] {
			seen[hint] = true
			merged.Skills = append(merged.Skills, hint)
		}
	}
	return merged
}
