// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"math"
	"strings"
)

// ValidateRequest validates a RecommendationRequest.
//
// Validation rules:
//   - UserQuery must contain a non-whitespace character
//   - MaxResults must be at least 1
//   - MinConfidence must be within [0,1]
//
// NOT validated:
//   - UIChips (may be empty; blank chips are dropped from the enhanced query)
//   - UserID (opaque, passed through)
func ValidateRequest(req *RecommendationRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if strings.TrimSpace(req.UserQuery) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrEmptyQuery)
	}

	if req.MaxResults < 1 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidRequest, ErrInvalidMaxResults, req.MaxResults)
	}

	if !(req.MinConfidence >= 0 && req.MinConfidence <= 1) {
		return fmt.Errorf("%w: %w: got %g", ErrInvalidRequest, ErrInvalidMinConfidence, req.MinConfidence)
	}

	return nil
}

// ValidateCourse validates a Course before it is indexed.
//
// Validation rules:
//   - ID and Title must not be empty
//   - Level must be a known level
//   - Price must be finite and StudentsCount must not be negative
//   - Rating, when present, must be within [0,5]
func ValidateCourse(c *Course) error {
	if c == nil {
		return fmt.Errorf("%w: course is nil", ErrInvalidCourse)
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCourse)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrMissingTitle)
	}
	if _, ok := ParseLevel(string(c.Level)); !ok {
		return fmt.Errorf("%w: %w %q", ErrInvalidCourse, ErrInvalidLevel, c.Level)
	}
	if !validPrice(c.Price) {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrInvalidPrice)
	}
	if c.StudentsCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrInvalidStudentsCount)
	}
	if c.Rating != nil && !validRating(*c.Rating) {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrInvalidRating)
	}
	return nil
}

// ValidateIntent checks the keyword and topic caps and uniqueness.
func ValidateIntent(intent UserIntent) error {
	if len(intent.Keywords) > MaxIntentKeywords {
		return fmt.Errorf("%w: %d keywords exceeds %d", ErrInvalidIntent, len(intent.Keywords), MaxIntentKeywords)
	}
	if len(intent.Topics) > MaxIntentTopics {
		return fmt.Errorf("%w: %d topics exceeds %d", ErrInvalidIntent, len(intent.Topics), MaxIntentTopics)
	}
	if hasDuplicate(intent.Keywords) {
		return fmt.Errorf("%w: duplicate keyword", ErrInvalidIntent)
	}
	if hasDuplicate(intent.Topics) {
		return fmt.Errorf("%w: duplicate topic", ErrInvalidIntent)
	}
	return nil
}

func hasDuplicate(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// validPrice rejects negative, NaN and infinite prices.
func validPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 1)
}

// NaN fails both comparisons.
func validRating(r float64) bool {
	return r >= 0 && r <= 5
}
