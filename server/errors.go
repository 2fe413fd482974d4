package server

import "errors"

var (
	// ErrRecommenderRequired is returned when no recommender is given.
	ErrRecommenderRequired = errors.New("recommender is required")

	// ErrIndexRequired is returned when no index is given.
	ErrIndexRequired = errors.New("index is required")
)
