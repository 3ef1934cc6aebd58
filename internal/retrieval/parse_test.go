package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
	"github.com/jonathan/talent-match/internal/vectorstore"
)

func TestFlattenResponse_WellFormed(t *testing.T) {
	resp := &vectorstore.QueryResponse{
		IDs: []any{[]any{"job-1", "job-2"}},
		Metadatas: []any{[]any{
			map[string]any{"title": "Backend Engineer", "skills": "go, sql"},
			map[string]any{"id": "explicit-2", "title": "Data Engineer"},
		}},
		Distances: []any{[]any{0.1, 0.45}},
	}

	matches, ok := flattenResponse(resp, types.KindJob)
	require.True(t, ok)
	require.Len(t, matches, 2)

	assert.Equal(t, "job-1", matches[0].ID)
	assert.Equal(t, "Backend Engineer", matches[0].Title)
	assert.Equal(t, []string{"go", "sql"}, matches[0].Skills)
	require.NotNil(t, matches[0].VectorScore)
	assert.InDelta(t, 0.9, *matches[0].VectorScore, 1e-9)

	// An id inside the metadata wins over the ids array.
	assert.Equal(t, "explicit-2", matches[1].ID)
	require.NotNil(t, matches[1].VectorScore)
	assert.InDelta(t, 0.55, *matches[1].VectorScore, 1e-9)
}

func TestFlattenResponse_DistanceAboveOneFloorsAtZero(t *testing.T) {
	resp := &vectorstore.QueryResponse{
		Metadatas: []any{[]any{map[string]any{"id": "j1", "title": "Role"}}},
		Distances: []any{[]any{1.7}},
	}

	matches, ok := flattenResponse(resp, types.KindJob)
	require.True(t, ok)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].VectorScore)
	assert.Equal(t, 0.0, *matches[0].VectorScore)
}

func TestFlattenResponse_Nil(t *testing.T) {
	matches, ok := flattenResponse(nil, types.KindJob)
	assert.False(t, ok)
	assert.Nil(t, matches)
}

func TestFlattenResponse_AbsentMetadatasIsEmpty(t *testing.T) {
	matches, ok := flattenResponse(&vectorstore.QueryResponse{}, types.KindJob)
	assert.True(t, ok)
	assert.Empty(t, matches)
}

func TestFlattenResponse_EmptyBatchListIsEmpty(t *testing.T) {
	resp := &vectorstore.QueryResponse{Metadatas: []any{}}
	matches, ok := flattenResponse(resp, types.KindJob)
	assert.True(t, ok)
	assert.Empty(t, matches)
}

func TestFlattenResponse_MalformedMetadatas(t *testing.T) {
	for name, metas := range map[string]any{
		"string":         "oops",
		"number":         42,
		"flat list":      []any{map[string]any{"id": "j1"}},
		"nested nonlist": []any{"oops"},
	} {
		t.Run(name, func(t *testing.T) {
			resp := &vectorstore.QueryResponse{Metadatas: metas}
			matches, ok := flattenResponse(resp, types.KindJob)
			assert.False(t, ok)
			assert.Nil(t, matches)
		})
	}
}

func TestFlattenResponse_SkipsNonMapEntries(t *testing.T) {
	resp := &vectorstore.QueryResponse{
		Metadatas: []any{[]any{
			"not a map",
			map[string]any{"id": "j2", "title": "Role"},
		}},
		Distances: []any{[]any{0.1, 0.2}},
	}

	matches, ok := flattenResponse(resp, types.KindJob)
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "j2", matches[0].ID)
	// Distances stay index-aligned with metadatas, skipped entries included.
	require.NotNil(t, matches[0].VectorScore)
	assert.InDelta(t, 0.8, *matches[0].VectorScore, 1e-9)
}

func TestFlattenResponse_MissingDistancesAndIDs(t *testing.T) {
	resp := &vectorstore.QueryResponse{
		Metadatas: []any{[]any{map[string]any{"title": "Role"}}},
	}

	matches, ok := flattenResponse(resp, types.KindJob)
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Empty(t, matches[0].ID)
	assert.Nil(t, matches[0].VectorScore)
}

func TestFlattenResponse_NonNumericDistanceIgnored(t *testing.T) {
	resp := &vectorstore.QueryResponse{
		Metadatas: []any{[]any{map[string]any{"id": "j1", "title": "Role"}}},
		Distances: []any{[]any{"close"}},
	}

	matches, ok := flattenResponse(resp, types.KindJob)
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Nil(t, matches[0].VectorScore)
}
