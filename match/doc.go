// Package match rescores retrieval candidates against a user intent.
//
// A candidate's similarity is the base score. Deterministic boosts are added
// for a level match, for intent keywords found in the course title and for
// intent topics equal to a course tag. The accumulated boost, not the capped
// confidence, decides whether a match is exact.
package match
