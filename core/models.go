package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is derived from content with IDFromContent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Level is the difficulty level of a course.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAllLevels    Level = "all_levels"
)

// ParseLevel converts a string to a Level, ignoring case and surrounding space.
// The second return value is false for unknown levels.
func ParseLevel(s string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	case LevelAllLevels:
		return LevelAllLevels, true
	}
	return "", false
}

// Course is a catalog entry. Courses handed to the scorer are built fresh
// from candidate metadata for every request and are never mutated.
type Course struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Level         Level    `json:"level"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Price         float64  `json:"price"`
	Rating        *float64 `json:"rating,omitempty"`
	StudentsCount int      `json:"students_count"`
	Instructor    string   `json:"instructor"`
	Features      []string `json:"features,omitempty"`
}

// IntentType classifies what the user wants to do.
type IntentType string

const (
	IntentLearn   IntentType = "learn"
	IntentBuild   IntentType = "build"
	IntentExplore IntentType = "explore"
	IntentCompare IntentType = "compare"
	IntentUnknown IntentType = "unknown"
)

// Caps applied to UserIntent lists.
const (
	MaxIntentKeywords = 5
	MaxIntentTopics   = 3
)

// UserIntent is the structured reading of a free-text query.
type UserIntent struct {
	Level      string     `json:"level,omitempty"`
	Keywords   []string   `json:"keywords"`
	Topics     []string   `json:"topics"`
	IntentType IntentType `json:"intent_type"`
}

// NewUserIntent builds a UserIntent, deduplicating keywords and topics in
// first-seen order and truncating them to their caps.
func NewUserIntent(level string, keywords, topics []string, intentType IntentType) UserIntent {
	return UserIntent{
		Level:      level,
		Keywords:   dedupCap(keywords, MaxIntentKeywords),
		Topics:     dedupCap(topics, MaxIntentTopics),
		IntentType: intentType,
	}
}

func dedupCap(values []string, limit int) []string {
	out := make([]string, 0, min(len(values), limit))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if len(out) == limit {
			break
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// MatchType grades how well a recommendation fits the query.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchSimilar  MatchType = "similar"
	MatchFallback MatchType = "fallback"
)

// Candidate is a raw hit returned by the similarity retriever.
// Metadata values are flat strings; tags and features are comma-joined.
type Candidate struct {
	ID       string
	Score    float64
	Document string
	Metadata map[string]string
}

// Filter restricts retrieval to records whose metadata equals the given
// values. Empty fields are ignored.
type Filter struct {
	Level    string
	Category string
}

// Empty reports whether the filter has no constraints.
func (f *Filter) Empty() bool {
	return f == nil || (f.Level == "" && f.Category == "")
}

// Matches reports whether metadata satisfies the filter.
func (f *Filter) Matches(metadata map[string]string) bool {
	if f.Empty() {
		return true
	}
	if f.Level != "" && metadata[MetaLevel] != f.Level {
		return false
	}
	if f.Category != "" && metadata[MetaCategory] != f.Category {
		return false
	}
	return true
}

// RecommendationItem is a single scored recommendation.
type RecommendationItem struct {
	Course          Course         `json:"course"`
	ConfidenceScore float64        `json:"confidence_score"`
	Reasoning       string         `json:"reasoning"`
	MatchType       MatchType      `json:"match_type"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Request defaults.
const (
	DefaultMaxResults    = 5
	DefaultMinConfidence = 0.5
)

// RecommendationRequest is a caller's query.
type RecommendationRequest struct {
	UserQuery     string
	UIChips       []string
	UserID        string
	MaxResults    int
	MinConfidence float64
}

// NewRecommendationRequest returns a request with the default result count
// and confidence threshold.
func NewRecommendationRequest(query string, chips ...string) RecommendationRequest {
	return RecommendationRequest{
		UserQuery:     query,
		UIChips:       chips,
		MaxResults:    DefaultMaxResults,
		MinConfidence: DefaultMinConfidence,
	}
}

// EnhancedQuery joins the user query and the UI chips with single spaces.
func (r RecommendationRequest) EnhancedQuery() string {
	parts := make([]string, 0, len(r.UIChips)+1)
	parts = append(parts, strings.TrimSpace(r.UserQuery))
	for _, chip := range r.UIChips {
		if chip = strings.TrimSpace(chip); chip != "" {
			parts = append(parts, chip)
		}
	}
	return strings.Join(parts, " ")
}

// RecommendationResponse is the assembled answer to a request.
type RecommendationResponse struct {
	Query           string               `json:"query"`
	Intent          UserIntent           `json:"intent"`
	Recommendations []RecommendationItem `json:"recommendations"`
	MatchType       MatchType            `json:"match_type"`
	Timestamp       time.Time            `json:"timestamp"`
}

// IndexedCourse is the stored form of a course in the vector index.
type IndexedCourse struct {
	Key        ID
	CourseID   string
	Document   string
	Metadata   map[string]string
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Checkpoint records the last ingested state of a catalog source.
type Checkpoint struct {
	Source    string
	Digest    string
	Count     int
	UpdatedAt time.Time
}
