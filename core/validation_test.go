package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *RecommendationRequest
		wantErr error
	}{
		{
			name:    "valid request",
			req:     &RecommendationRequest{UserQuery: "learn python", MaxResults: 5, MinConfidence: 0.5},
			wantErr: nil,
		},
		{
			name:    "zero confidence is valid",
			req:     &RecommendationRequest{UserQuery: "python", MaxResults: 1, MinConfidence: 0},
			wantErr: nil,
		},
		{
			name:    "nil request",
			req:     nil,
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "empty query",
			req:     &RecommendationRequest{UserQuery: "", MaxResults: 5, MinConfidence: 0.5},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "whitespace query",
			req:     &RecommendationRequest{UserQuery: " \t\n", MaxResults: 5, MinConfidence: 0.5},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "zero max results",
			req:     &RecommendationRequest{UserQuery: "go", MaxResults: 0, MinConfidence: 0.5},
			wantErr: ErrInvalidMaxResults,
		},
		{
			name:    "confidence above one",
			req:     &RecommendationRequest{UserQuery: "go", MaxResults: 5, MinConfidence: 1.5},
			wantErr: ErrInvalidMinConfidence,
		},
		{
			name:    "NaN confidence",
			req:     &RecommendationRequest{UserQuery: "go", MaxResults: 5, MinConfidence: math.NaN()},
			wantErr: ErrInvalidMinConfidence,
		},
		{
			name:    "negative confidence",
			req:     &RecommendationRequest{UserQuery: "go", MaxResults: 5, MinConfidence: -0.1},
			wantErr: ErrInvalidMinConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRequest() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateRequest() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRequest() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("ValidateRequest() error = %v, should wrap ErrInvalidRequest", err)
			}
		})
	}
}

func TestValidateCourse(t *testing.T) {
	bad := 6.0
	nan := math.NaN()
	tests := []struct {
		name    string
		course  *Course
		wantErr error
	}{
		{
			name:   "valid course",
			course: &Course{ID: "c1", Title: "Go", Level: LevelBeginner},
		},
		{
			name:    "nil course",
			course:  nil,
			wantErr: ErrInvalidCourse,
		},
		{
			name:    "missing title",
			course:  &Course{ID: "c1", Level: LevelBeginner},
			wantErr: ErrMissingTitle,
		},
		{
			name:    "unknown level",
			course:  &Course{ID: "c1", Title: "Go", Level: "guru"},
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "negative price",
			course:  &Course{ID: "c1", Title: "Go", Level: LevelBeginner, Price: -5},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "NaN price",
			course:  &Course{ID: "c1", Title: "Go", Level: LevelBeginner, Price: math.NaN()},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "infinite price",
			course:  &Course{ID: "c1", Title: "Go", Level: LevelBeginner, Price: math.Inf(1)},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "NaN rating",
			course:  &Course{ID: "c1", Title: "Go", Level: LevelBeginner, Rating: &nan},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "rating out of range",
			course:  &Course{ID: "c1", Title: "Go", Level: LevelBeginner, Rating: &bad},
			wantErr: ErrInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCourse(tt.course)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCourse() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCourse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateIntent(t *testing.T) {
	over := UserIntent{Keywords: []string{"a", "b", "c", "d", "e", "f"}}
	if err := ValidateIntent(over); !errors.Is(err, ErrInvalidIntent) {
		t.Errorf("ValidateIntent() error = %v, want ErrInvalidIntent", err)
	}

	dup := UserIntent{Topics: []string{"cloud", "cloud"}}
	if err := ValidateIntent(dup); !errors.Is(err, ErrInvalidIntent) {
		t.Errorf("ValidateIntent() error = %v, want ErrInvalidIntent", err)
	}
}
