package recommend

import "github.com/poiesic/coursematch/core"

// Fixed values of the generic and hardcoded tiers.
const (
	DefaultGenericQuery = "programming web development backend"

	GenericConfidence = 0.6
	GenericReasoning  = "Popular course with good fundamentals"

	HardcodedConfidence = 0.5
	HardcodedReasoning  = "Foundational course to build essential skills"
)

// genericDefaults fill the sparse metadata of generic tier candidates.
func genericDefaults() core.CourseDefaults {
	rating := 4.5
	return core.CourseDefaults{
		Description:   "Learn essential skills",
		Category:      "General",
		Instructor:    "Expert Instructor",
		Price:         1299,
		Rating:        &rating,
		StudentsCount: 1000,
	}
}

// HardcodedCourses returns the last-resort catalog. Each call returns fresh
// values.
func HardcodedCourses() []core.Course {
	rating := func() *float64 { r := 4.5; return &r }
	return []core.Course{
		{
			ID:            "fallback-backend",
			Title:         "Backend Development Fundamentals",
			Description:   "Learn the core concepts of backend development applicable to any technology stack.",
			Level:         core.LevelBeginner,
			Category:      "Programming",
			Tags:          []string{},
			Price:         1299,
			Rating:        rating(),
			StudentsCount: 1000,
			Instructor:    "Expert Instructor",
			Features:      []string{},
		},
		{
			ID:            "fallback-web",
			Title:         "Web Development Complete Course",
			Description:   "Full-stack web development covering both frontend and backend technologies.",
			Level:         core.LevelIntermediate,
			Category:      "Web Development",
			Tags:          []string{},
			Price:         1899,
			Rating:        rating(),
			StudentsCount: 1000,
			Instructor:    "Expert Instructor",
			Features:      []string{},
		},
	}
}
