package retrieval

import (
	"github.com/jonathan/talent-match/internal/types"
	"github.com/jonathan/talent-match/internal/vectorstore"
)

// flattenResponse converts a Chroma-shaped response into match records.
// The response nests every array one level per submitted query, and any
// field may be missing or not a list; shape problems are detected
// structurally and reported via ok=false instead of panicking or erroring.
//
// Each returned distance becomes a similarity via max(0, 1-distance).
func flattenResponse(resp *vectorstore.QueryResponse, kind types.Kind) ([]types.Match, bool) {
	if resp == nil {
		return nil, false
	}

	metas, ok := firstBatch(resp.Metadatas)
	if !ok {
		// A present-but-malformed metadatas field is a shape problem;
		// an absent or empty one is just an empty result.
		return nil, emptyOrAbsent(resp.Metadatas)
	}

	ids, _ := firstBatch(resp.IDs)
	distances, _ := firstBatch(resp.Distances)

	matches := make([]types.Match, 0, len(metas))
	for i, raw := range metas {
		meta, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		m := types.MatchFromMap(meta, kind)
		if m.ID == "" && i < len(ids) {
			m.ID = types.CoerceString(ids[i])
		}
		if i < len(distances) {
			if distance, ok := types.CoerceFloat(distances[i]); ok {
				similarity := 1 - distance
				if similarity < 0 {
					similarity = 0
				}
				m.VectorScore = &similarity
			}
		}
		matches = append(matches, m)
	}
	return matches, true
}

func emptyOrAbsent(v any) bool {
	if v == nil {
		return true
	}
	list, ok := v.([]any)
	return ok && len(list) == 0
}

// firstBatch unwraps one nesting level: [[a, b, c]] becomes [a, b, c].
// ok is false when the value is absent or not nested lists.
func firstBatch(v any) ([]any, bool) {
	outer, ok := v.([]any)
	if !ok || len(outer) == 0 {
		return nil, false
	}
	inner, ok := outer[0].([]any)
	if !ok {
		return nil, false
	}
	return inner, true
}
