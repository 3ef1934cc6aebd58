package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/features"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/jonathan/talent-match/internal/vectorstore"
)

type fakeVectors struct {
	resp       *vectorstore.QueryResponse
	err        error
	calls      int
	collection string
	queryText  string
	limit      int
	where      map[string]string
}

func (f *fakeVectors) Query(_ context.Context, collection, queryText string, limit int, where map[string]string) (*vectorstore.QueryResponse, error) {
	f.calls++
	f.collection = collection
	f.queryText = queryText
	f.limit = limit
	f.where = where
	return f.resp, f.err
}

type fakeStore struct {
	activeJobs       []types.Match
	activeJobsErr    error
	recentJobs       []types.Match
	recentJobsErr    error
	openCandidates   []types.Match
	recentCandidates []types.Match

	activeCalls int
	recentCalls int
	recentLimit int
}

func (f *fakeStore) ListActiveJobs(_ context.Context, _ int) ([]types.Match, error) {
	f.activeCalls++
	return f.activeJobs, f.activeJobsErr
}

func (f *fakeStore) ListRecentJobs(_ context.Context, limit int) ([]types.Match, error) {
	f.recentCalls++
	f.recentLimit = limit
	if limit < len(f.recentJobs) {
		return f.recentJobs[:limit], f.recentJobsErr
	}
	return f.recentJobs, f.recentJobsErr
}

func (f *fakeStore) ListOpenCandidates(_ context.Context, _ int) ([]types.Match, error) {
	return f.openCandidates, nil
}

func (f *fakeStore) ListRecentCandidates(_ context.Context, limit int) ([]types.Match, error) {
	f.recentLimit = limit
	return f.recentCandidates, nil
}

func vectorResponse(entries ...map[string]any) *vectorstore.QueryResponse {
	metas := make([]any, 0, len(entries))
	ids := make([]any, 0, len(entries))
	distances := make([]any, 0, len(entries))
	for i, e := range entries {
		metas = append(metas, any(e))
		ids = append(ids, any(string(rune('a'+i))))
		distances = append(distances, any(0.2))
	}
	return &vectorstore.QueryResponse{
		IDs:       []any{ids},
		Metadatas: []any{metas},
		Distances: []any{distances},
	}
}

func seekerCtx() map[string]any {
	return map[string]any{
		"skills":   []any{"go", "sql"},
		"location": "Austin, TX",
	}
}

func TestRecommendJobs_VectorTierWins(t *testing.T) {
	vectors := &fakeVectors{resp: vectorResponse(
		map[string]any{"id": "job-1", "title": "Backend Engineer", "skills": "go, sql", "location": "Austin, TX"},
		map[string]any{"id": "job-2", "title": "Data Engineer", "skills": "python", "location": "Remote"},
	)}
	store := &fakeStore{activeJobs: []types.Match{{ID: "meta-1", Kind: types.KindJob}}}
	svc := New(vectors, store, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 5, "")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	assert.Equal(t, "job-1", matches[0].ID)
	for _, m := range matches {
		assert.Equal(t, types.SourceVector, m.Source)
	}
	// The metadata tier never runs when the vector tier produces results.
	assert.Equal(t, 0, store.activeCalls)
	assert.Equal(t, "jobs", vectors.collection)
	assert.Equal(t, map[string]string{"kind": "job"}, vectors.where)
	assert.Equal(t, 10, vectors.limit)
}

func TestRecommendJobs_FallsBackToMetadata(t *testing.T) {
	vectors := &fakeVectors{err: errors.New("connection refused")}
	store := &fakeStore{activeJobs: []types.Match{
		{ID: "meta-1", Kind: types.KindJob, Title: "Backend Engineer", Skills: []string{"go"}},
		{ID: "meta-2", Kind: types.KindJob, Title: "Frontend Engineer", Skills: []string{"react"}},
	}}
	svc := New(vectors, store, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 5, "")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	assert.Equal(t, "meta-1", matches[0].ID)
	for _, m := range matches {
		assert.Equal(t, types.SourceMetadata, m.Source)
	}
	assert.Equal(t, 0, store.recentCalls)
}

func TestRecommendJobs_CatalogLastResort(t *testing.T) {
	vectors := &fakeVectors{err: errors.New("down")}
	store := &fakeStore{
		activeJobsErr: errors.New("also down"),
		recentJobs: []types.Match{
			{ID: "recent-1", Kind: types.KindJob, Title: "Any Role"},
			{ID: "recent-2", Kind: types.KindJob, Title: "Other Role"},
		},
	}
	svc := New(vectors, store, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 2, "")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	for _, m := range matches {
		assert.Equal(t, types.SourceCatalog, m.Source)
		require.NotNil(t, m.MatchScore)
		assert.Equal(t, 0.35, *m.MatchScore)
		assert.Nil(t, m.ScoreBreakdown)
	}
	// The catalog fetch never drops below the default page size.
	assert.Equal(t, 5, store.recentLimit)
}

func TestRecommendJobs_AllTiersFailReturnsEmpty(t *testing.T) {
	vectors := &fakeVectors{err: errors.New("down")}
	store := &fakeStore{
		activeJobsErr: errors.New("down"),
		recentJobsErr: errors.New("down"),
	}
	svc := New(vectors, store, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 5, "")
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRecommendJobs_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vectors := &fakeVectors{err: context.Canceled}
	store := &fakeStore{recentJobs: []types.Match{{ID: "recent-1"}}}
	svc := New(vectors, store, Config{}, zap.NewNop())

	_, err := svc.RecommendJobs(ctx, seekerCtx(), 5, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.activeCalls)
}

func TestRecommendJobs_ZeroLimitUsesDefault(t *testing.T) {
	vectors := &fakeVectors{resp: vectorResponse()}
	store := &fakeStore{recentJobs: []types.Match{
		{ID: "r1"}, {ID: "r2"}, {ID: "r3"}, {ID: "r4"}, {ID: "r5"}, {ID: "r6"},
	}}
	svc := New(vectors, store, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 0, "")
	require.NoError(t, err)
	assert.Len(t, matches, 5)
	assert.Equal(t, 10, vectors.limit)
}

func TestRecommendJobs_MalformedVectorResponseFallsThrough(t *testing.T) {
	vectors := &fakeVectors{resp: &vectorstore.QueryResponse{Metadatas: "not a list"}}
	store := &fakeStore{activeJobs: []types.Match{
		{ID: "meta-1", Kind: types.KindJob, Title: "Backend Engineer"},
	}}
	svc := New(vectors, store, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 5, "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, types.SourceMetadata, matches[0].Source)
}

func TestRecommendJobs_HintsFilterTiers(t *testing.T) {
	vectors := &fakeVectors{resp: vectorResponse(
		map[string]any{"id": "job-go", "title": "Go Engineer", "skills": "go"},
		map[string]any{"id": "job-java", "title": "Java Engineer", "skills": "java"},
	)}
	store := &fakeStore{}
	svc := New(vectors, store, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 5, "skills: go")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "job-go", matches[0].ID)
}

func TestRecommendCandidates_UsesCandidateCollection(t *testing.T) {
	vectors := &fakeVectors{resp: vectorResponse(
		map[string]any{"id": "cand-1", "title": "Jane Doe", "skills": "go"},
	)}
	store := &fakeStore{}
	svc := New(vectors, store, Config{CandidateCollection: "talent"}, zap.NewNop())

	employerCtx := map[string]any{"skills": []any{"go"}, "industry": "fintech"}
	matches, err := svc.RecommendCandidates(context.Background(), employerCtx, 5, "")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	assert.Equal(t, "talent", vectors.collection)
	assert.Equal(t, map[string]string{"kind": "candidate"}, vectors.where)
	assert.Equal(t, types.SourceVector, matches[0].Source)
}

func TestRecommend_LimitCapsVectorResults(t *testing.T) {
	vectors := &fakeVectors{resp: vectorResponse(
		map[string]any{"id": "j1", "title": "Go Engineer", "skills": "go"},
		map[string]any{"id": "j2", "title": "Go Developer", "skills": "go"},
		map[string]any{"id": "j3", "title": "Go Lead", "skills": "go"},
	)}
	svc := New(vectors, &fakeStore{}, Config{}, zap.NewNop())

	matches, err := svc.RecommendJobs(context.Background(), seekerCtx(), 2, "")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMergeHints(t *testing.T) {
	base := features.Set{Skills: []string{"go", "sql"}}
	merged := mergeHints(base, []string{"rust", "go"})

	assert.ElementsMatch(t, []string{"go", "sql", "rust"}, merged.Skills)
	// The original set is untouched.
	assert.ElementsMatch(t, []string{"go", "sql"}, base.Skills)
}
