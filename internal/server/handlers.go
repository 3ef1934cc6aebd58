package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/present"
	"github.com/jonathan/talent-match/internal/types"
)

// recommendRequest is the body of both recommendation endpoints.
type recommendRequest struct {
	// UserContext carries the caller's profile fields (skills, location,
	// industry, experience_years, free-form metadata). Unknown keys are
	// tolerated and passed through.
	UserContext map[string]any `json:"user_context"`
	Query       string         `json:"query,omitempty"`
	Limit       int            `json:"limit,omitempty" validate:"gte=0,lte=50"`
}

// recommendResponse is the recommendation payload.
type recommendResponse struct {
	Matches []types.DisplayItem `json:"matches"`
	Summary string              `json:"summary"`
	Count   int                 `json:"count"`
}

type recommendFunc func(ctx context.Context, userCtx map[string]any, limit int, query string) ([]types.Match, error)

// handleRecommendJobs returns ranked job recommendations for a seeker.
func (s *Server) handleRecommendJobs(w http.ResponseWriter, r *http.Request) {
	s.handleRecommend(w, r, types.AudienceJobSeeker, s.recommender.RecommendJobs)
}

// handleRecommendCandidates returns ranked candidate recommendations for an employer.
func (s *Server) handleRecommendCandidates(w http.ResponseWriter, r *http.Request) {
	s.handleRecommend(w, r, types.AudienceEmployer, s.recommender.RecommendCandidates)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request, audience types.Audience, recommend recommendFunc) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	matches, err := recommend(r.Context(), req.UserContext, req.Limit, req.Query)
	if err != nil {
		// Only context cancellation escapes the pipeline.
		if r.Context().Err() != nil {
			return
		}
		s.log.Error("recommendation failed",
			zap.String("audience", string(audience)), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "recommendation failed")
		return
	}

	items, summary := present.PrepareMatches(matches, audience)
	if items == nil {
		items = []types.DisplayItem{}
	}
	s.jsonResponse(w, http.StatusOK, recommendResponse{
		Matches: items,
		Summary: summary,
		Count:   len(items),
	})
}
