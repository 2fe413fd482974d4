package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata keys stored alongside every indexed course.
const (
	MetaCourseID      = "course_id"
	MetaTitle         = "title"
	MetaDescription   = "description"
	MetaLevel         = "level"
	MetaCategory      = "category"
	MetaTags          = "tags"
	MetaPrice         = "price"
	MetaRating        = "rating"
	MetaStudentsCount = "students_count"
	MetaInstructor    = "instructor"
	MetaFeatures      = "features"
)

// CourseDefaults fills fields missing from candidate metadata.
// Zero numeric defaults leave absent values at zero; a nil Rating leaves the
// course unrated.
type CourseDefaults struct {
	Description   string
	Category      string
	Instructor    string
	Price         float64
	Rating        *float64
	StudentsCount int
}

// DefaultCourseDefaults returns the defaults applied to sparse candidates.
func DefaultCourseDefaults() CourseDefaults {
	return CourseDefaults{
		Category:   "General",
		Instructor: "Expert Instructor",
	}
}

// CourseMetadata flattens a course into the string map stored in the index.
func CourseMetadata(c Course) map[string]string {
	md := map[string]string{
		MetaCourseID:      c.ID,
		MetaTitle:         c.Title,
		MetaDescription:   c.Description,
		MetaLevel:         string(c.Level),
		MetaCategory:      c.Category,
		MetaTags:          strings.Join(c.Tags, ","),
		MetaPrice:         strconv.FormatFloat(c.Price, 'f', -1, 64),
		MetaStudentsCount: strconv.Itoa(c.StudentsCount),
		MetaInstructor:    c.Instructor,
		MetaFeatures:      strings.Join(c.Features, ","),
	}
	if c.Rating != nil {
		md[MetaRating] = strconv.FormatFloat(*c.Rating, 'f', -1, 64)
	}
	return md
}

// CourseFromCandidate rebuilds a Course from a retrieval candidate.
// It returns an error wrapping ErrMalformedCandidate when required fields are
// missing or values are out of range; such candidates are skipped by callers.
func CourseFromCandidate(c Candidate, defaults CourseDefaults) (Course, error) {
	md := c.Metadata
	title := strings.TrimSpace(md[MetaTitle])
	if title == "" {
		return Course{}, fmt.Errorf("%w: %s: %w", ErrMalformedCandidate, c.ID, ErrMissingTitle)
	}

	level := LevelBeginner
	if raw := md[MetaLevel]; strings.TrimSpace(raw) != "" {
		parsed, ok := ParseLevel(raw)
		if !ok {
			return Course{}, fmt.Errorf("%w: %s: %w %q", ErrMalformedCandidate, c.ID, ErrInvalidLevel, raw)
		}
		level = parsed
	}

	price := defaults.Price
	if raw := strings.TrimSpace(md[MetaPrice]); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || !validPrice(p) {
			return Course{}, fmt.Errorf("%w: %s: %w %q", ErrMalformedCandidate, c.ID, ErrInvalidPrice, raw)
		}
		price = p
	}

	rating := copyRating(defaults.Rating)
	if raw := strings.TrimSpace(md[MetaRating]); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || !validRating(r) {
			return Course{}, fmt.Errorf("%w: %s: %w %q", ErrMalformedCandidate, c.ID, ErrInvalidRating, raw)
		}
		rating = &r
	}

	students := defaults.StudentsCount
	if raw := strings.TrimSpace(md[MetaStudentsCount]); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Course{}, fmt.Errorf("%w: %s: %w %q", ErrMalformedCandidate, c.ID, ErrInvalidStudentsCount, raw)
		}
		students = n
	}

	id := md[MetaCourseID]
	if id == "" {
		id = c.ID
	}
	description := md[MetaDescription]
	if description == "" {
		description = c.Document
	}
	if description == "" {
		description = defaults.Description
	}

	return Course{
		ID:            id,
		Title:         title,
		Description:   description,
		Level:         level,
		Category:      valueOr(md[MetaCategory], defaults.Category),
		Tags:          SplitList(md[MetaTags]),
		Price:         price,
		Rating:        rating,
		StudentsCount: students,
		Instructor:    valueOr(md[MetaInstructor], defaults.Instructor),
		Features:      SplitList(md[MetaFeatures]),
	}, nil
}

// SplitList splits a comma-joined metadata value, trimming blanks.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func copyRating(r *float64) *float64 {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
