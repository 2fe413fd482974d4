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

import "errors"

// Request validation errors
var (
	// ErrInvalidRequest indicates a RecommendationRequest failed validation.
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrEmptyQuery indicates the user query is empty or whitespace.
	ErrEmptyQuery = errors.New("user query cannot be empty")

	// ErrInvalidMaxResults indicates MaxResults is below 1.
	ErrInvalidMaxResults = errors.New("max results must be at least 1")

	// ErrInvalidMinConfidence indicates MinConfidence is outside [0,1].
	ErrInvalidMinConfidence = errors.New("min confidence must be between 0 and 1")
)

// Catalog data errors
var (
	// ErrInvalidCourse indicates a Course failed validation.
	ErrInvalidCourse = errors.New("invalid course")

	// ErrMalformedCandidate indicates candidate metadata cannot form a Course.
	ErrMalformedCandidate = errors.New("malformed candidate")

	// ErrMissingTitle indicates the course title is empty.
	ErrMissingTitle = errors.New("title is required")

	// ErrInvalidLevel indicates an unknown level value.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrInvalidPrice indicates a negative or non-numeric price.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidRating indicates a rating outside 0-5.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidStudentsCount indicates a negative or non-numeric student count.
	ErrInvalidStudentsCount = errors.New("invalid students count")

	// ErrInvalidIntent indicates a UserIntent violates its caps.
	ErrInvalidIntent = errors.New("invalid intent")
)
