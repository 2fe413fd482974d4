package retrieval

import (
	"strings"

	"github.com/poiesic/coursematch/core"
)

// Item is a course to index together with the text that is embedded for it.
type Item struct {
	Course core.Course
	// Document is the embedded text. When empty, DocumentText(Course) is used.
	Document string
}

// DocumentText builds embedding text from a title, a description and any
// number of keyword lists, in that order. Empty parts are skipped.
func DocumentText(title, description string, lists ...[]string) string {
	parts := make([]string, 0, 2+len(lists))
	for _, p := range []string{title, description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	for _, list := range lists {
		if joined := strings.TrimSpace(strings.Join(list, " ")); joined != "" {
			parts = append(parts, joined)
		}
	}
	return strings.Join(parts, " ")
}

func (it Item) document() string {
	if strings.TrimSpace(it.Document) != "" {
		return it.Document
	}
	return DocumentText(it.Course.Title, it.Course.Description, it.Course.Tags)
}
