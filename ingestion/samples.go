package ingestion

import "encoding/json"

// SampleSource is the checkpoint source used for the sample catalog.
const SampleSource = "sample-catalog"

func rating(v float64) *float64 { return &v }

// SampleCourses returns the reference catalog used by the seed command and
// by tests.
func SampleCourses() []CatalogCourse {
	return []CatalogCourse{
		{
			ID:            "nodejs-backend-complete",
			Title:         "Complete Node.js Backend Development",
			Description:   "Master backend development with Node.js, Express, MongoDB, and deployment. Build production-ready APIs with authentication, validation, and best practices.",
			Level:         "intermediate",
			Category:      "Backend Development",
			Tags:          []string{"nodejs", "backend", "api", "express", "mongodb", "javascript"},
			Price:         1899,
			Rating:        rating(4.8),
			StudentsCount: 2547,
			Instructor:    "Expert Developer",
			Topics:        []string{"Express.js Framework", "MongoDB Integration", "Authentication & Authorization", "API Design", "Error Handling", "Testing"},
			Features:      []string{"Certificate", "Hands-on Projects", "Mentor Support", "Lifetime Access"},
		},
		{
			ID:            "backend-design-principles",
			Title:         "Backend System Design & Architecture",
			Description:   "Learn fundamental backend patterns, system design principles, and scalable architecture patterns that work across all programming languages and frameworks.",
			Level:         "beginner",
			Category:      "System Design",
			Tags:          []string{"backend", "system-design", "architecture", "scalability", "patterns", "apis"},
			Price:         1599,
			Rating:        rating(4.6),
			StudentsCount: 1823,
			Instructor:    "System Architect",
			Topics:        []string{"System Architecture", "Database Design", "API Patterns", "Caching Strategies", "Load Balancing", "Microservices"},
			Features:      []string{"Certificate", "System Design Basics", "Scalable Patterns", "Architecture Diagrams"},
		},
		{
			ID:            "python-backend-fundamentals",
			Title:         "Python Backend Development Fundamentals",
			Description:   "Build robust backend systems using Python, Django/Flask, PostgreSQL, and modern deployment practices. Perfect for backend engineering roles.",
			Level:         "beginner",
			Category:      "Backend Development",
			Tags:          []string{"python", "backend", "django", "flask", "postgresql", "apis"},
			Price:         1699,
			Rating:        rating(4.7),
			StudentsCount: 3241,
			Instructor:    "Python Expert",
			Topics:        []string{"Python Web Frameworks", "Database Integration", "RESTful APIs", "Authentication", "Testing", "Deployment"},
			Features:      []string{"Certificate", "Hands-on Projects", "Industry Projects", "Job Support"},
		},
		{
			ID:            "javascript-fullstack",
			Title:         "JavaScript Full-Stack Development",
			Description:   "Complete JavaScript development course covering both frontend and backend. Learn React, Node.js, Express, and modern JavaScript practices.",
			Level:         "intermediate",
			Category:      "Full-Stack Development",
			Tags:          []string{"javascript", "react", "nodejs", "fullstack", "express", "frontend", "backend"},
			Price:         2199,
			Rating:        rating(4.9),
			StudentsCount: 4156,
			Instructor:    "JavaScript Guru",
			Topics:        []string{"Modern JavaScript", "React Development", "Node.js & Express", "State Management", "API Integration", "Full-Stack Projects"},
			Features:      []string{"Certificate", "Portfolio Projects", "Job Assistance", "Lifetime Updates"},
		},
		{
			ID:            "data-structures-algorithms",
			Title:         "Data Structures & Algorithms Mastery",
			Description:   "Master computer science fundamentals with comprehensive coverage of data structures and algorithms. Essential for technical interviews and backend development.",
			Level:         "intermediate",
			Category:      "Computer Science",
			Tags:          []string{"algorithms", "data-structures", "problem-solving", "interview-prep", "computer-science"},
			Price:         1799,
			Rating:        rating(4.8),
			StudentsCount: 2891,
			Instructor:    "CS Professor",
			Topics:        []string{"Arrays & Strings", "Trees & Graphs", "Dynamic Programming", "Sorting & Searching", "System Design Basics", "Interview Practice"},
			Features:      []string{"Certificate", "Interview Preparation", "Practice Problems", "Mock Interviews"},
		},
	}
}

// SampleCatalog returns the sample courses encoded as catalog JSON.
func SampleCatalog() []byte {
	data, err := json.Marshal(Catalog{Courses: SampleCourses()})
	if err != nil {
		// Static data always encodes.
		panic(err)
	}
	return data
}
