package server

import (
	"time"

	"github.com/poiesic/coursematch/core"
)

// recommendationRequest is the body of POST /api/recommendations.
type recommendationRequest struct {
	UserQuery     string   `json:"user_query" binding:"required"`
	UIChips       []string `json:"ui_chips"`
	UserID        string   `json:"user_id"`
	MaxResults    *int     `json:"max_results" binding:"omitempty,min=1,max=50"`
	MinConfidence *float64 `json:"min_confidence" binding:"omitempty,min=0,max=1"`
}

func (r recommendationRequest) toCore(defaults core.RecommendationRequest) core.RecommendationRequest {
	req := defaults
	req.UserQuery = r.UserQuery
	req.UIChips = r.UIChips
	req.UserID = r.UserID
	if r.MaxResults != nil {
		req.MaxResults = *r.MaxResults
	}
	if r.MinConfidence != nil {
		req.MinConfidence = *r.MinConfidence
	}
	return req
}

// backendRequest is the body of POST /api/recommendations/backend.
type backendRequest struct {
	Query       string   `json:"query" binding:"required"`
	Chips       []string `json:"chips"`
	MaxResults  *int     `json:"max_results" binding:"omitempty,min=1,max=50"`
	UserContext struct {
		UserID string `json:"userId"`
	} `json:"userContext"`
}

type backendRecommendation struct {
	CourseStub     string         `json:"course_stub"`
	Title          string         `json:"title"`
	Level          core.Level     `json:"level"`
	MatchType      core.MatchType `json:"match_type"`
	Confidence     float64        `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
	Features       []string       `json:"features"`
	PersuasiveCopy string         `json:"persuasive_copy"`
}

type backendData struct {
	Intent          core.IntentType         `json:"intent"`
	MatchSummary    core.MatchType          `json:"match_summary"`
	Recommendations []backendRecommendation `json:"recommendations"`
}

type backendMeta struct {
	Timestamp    time.Time `json:"timestamp"`
	TotalResults int       `json:"total_results"`
	Query        string    `json:"query"`
}

type backendResponse struct {
	Success bool        `json:"success"`
	Data    backendData `json:"data"`
	Meta    backendMeta `json:"meta"`
}

// Backend callers expect some selling points even for sparse records.
var defaultFeatures = []string{"Certificate", "Expert Instruction"}

const persuasiveCopyLimit = 200

func toBackendResponse(resp *core.RecommendationResponse) backendResponse {
	recs := make([]backendRecommendation, 0, len(resp.Recommendations))
	for _, item := range resp.Recommendations {
		features := item.Course.Features
		if len(features) == 0 {
			features = defaultFeatures
		}
		recs = append(recs, backendRecommendation{
			CourseStub:     item.Course.ID,
			Title:          item.Course.Title,
			Level:          item.Course.Level,
			MatchType:      item.MatchType,
			Confidence:     item.ConfidenceScore,
			Reasoning:      item.Reasoning,
			Features:       features,
			PersuasiveCopy: persuasiveCopy(item.Course.Description),
		})
	}

	intentType := resp.Intent.IntentType
	if intentType == "" {
		intentType = core.IntentLearn
	}
	return backendResponse{
		Success: true,
		Data: backendData{
			Intent:          intentType,
			MatchSummary:    resp.MatchType,
			Recommendations: recs,
		},
		Meta: backendMeta{
			Timestamp:    resp.Timestamp,
			TotalResults: len(recs),
			Query:        resp.Query,
		},
	}
}

// persuasiveCopy truncates long descriptions on a rune boundary.
func persuasiveCopy(description string) string {
	runes := []rune(description)
	if len(runes) <= persuasiveCopyLimit {
		return description
	}
	return string(runes[:persuasiveCopyLimit]) + "..."
}
