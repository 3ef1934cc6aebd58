package retrieval

import (
	"context"

	"github.com/jonathan/talent-match/internal/types"
	"go.uber.org/zap"
)

// vectorTier queries the vector index for 2×limit neighbors, filters them
// by skill hints, and ranks them. Entries with positive match scores are
// preferred; when none scores positive the full ranked list is returned
// rather than nothing, which avoids a false "no results".
func (s *Service) vectorTier(ctx context.Context, req recommendRequest) ([]types.Match, error) {
	fetch := req.limit * 2
	if fetch < req.limit {
		fetch = req.limit
	}

	resp, err := s.vectors.Query(ctx, req.collection, req.queryText, fetch,
		map[string]string{"kind": string(req.kind)})
	if err != nil {
		return nil, err
	}

	records, ok := flattenResponse(resp, req.kind)
	if !ok {
		s.log.Warn("malformed vector search response treated as empty",
			zap.String("collection", req.collection), zap.String("operation", "query"))
		return nil, nil
	}
	records = filterByHints(records, req.hints)
	if len(records) == 0 {
		return nil, nil
	}

	ranked := req.rank(req.baseline, records)
	for i := range ranked {
		ranked[i].Source = types.SourceVector
	}

	positive := make([]types.Match, 0, len(ranked))
	for _, m := range ranked {
		if m.MatchScore != nil && *m.MatchScore > 0 {
			positive = append(positive, m)
		}
	}
	if len(positive) > 0 {
		ranked = positive
	}
	return capMatches(ranked, req.limit), nil
}

// metadataTier queries the document store directly, applies the same hint
// filter and ranking as the vector tier, and takes the first limit results.
func (s *Service) metadataTier(ctx context.Context, req recommendRequest) ([]types.Match, error) {
	records, err := req.listActive(ctx, metadataTierCap)
	if err != nil {
		return nil, err
	}

	records = filterByHints(records, req.hints)
	if len(records) == 0 {
		return nil, nil
	}

	ranked := req.rank(req.baseline, records)
	for i := range ranked {
		ranked[i].Source = types.SourceMetadata
	}
	return capMatches(ranked, req.limit), nil
}

// catalogTier lists the most recently created records with no matching at
// all: something to show even when nothing matched well. Every item gets
// the flat catalog score.
func (s *Service) catalogTier(ctx context.Context, req recommendRequest) ([]types.Match, error) {
	fetch := req.limit
	if fetch < defaultLimit {
		fetch = defaultLimit
	}

	records, err := req.listRecent(ctx, fetch)
	if err != nil {
		return nil, err
	}

	out := make([]types.Match, 0, len(records))
	for _, record := range records {
		m := record.Clone()
		flat := catalogScore
		m.MatchScore = &flat
		m.Source = types.SourceCatalog
		out = append(out, m)
	}
	return out, nil
}

func capMatches(matches []types.Match, limit int) []types.Match {
	if len(matches) > limit {
		return matches[:limit]
	}
	return matches
}
