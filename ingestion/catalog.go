package ingestion

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/retrieval"
)

// Catalog is the JSON course catalog format: {"courses": [...]}.
type Catalog struct {
	Courses []CatalogCourse `json:"courses"`
}

// CatalogCourse is one catalog entry. Only the title is required.
type CatalogCourse struct {
	ID            string   `json:"id,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Level         string   `json:"level,omitempty"`
	Category      string   `json:"category,omitempty"`
	Price         float64  `json:"price,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	StudentsCount int      `json:"students_count,omitempty"`
	Instructor    string   `json:"instructor,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	Projects      []string `json:"projects,omitempty"`
	Features      []string `json:"features,omitempty"`

	// EmbeddingText overrides the text built from the fields above.
	EmbeddingText string `json:"embedding_text,omitempty"`
}

// ParseCatalog decodes catalog JSON.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if len(c.Courses) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &c, nil
}

// ReadCatalogFile reads raw catalog bytes from path.
func ReadCatalogFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return data, nil
}

// Digest returns the hex BLAKE2b-256 digest of raw catalog bytes.
func Digest(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Document returns the text embedded for the course: title, description,
// topics, tags and projects.
func (c CatalogCourse) Document() string {
	if strings.TrimSpace(c.EmbeddingText) != "" {
		return c.EmbeddingText
	}
	return retrieval.DocumentText(c.Title, c.Description, c.Topics, c.Tags, c.Projects)
}

// Item converts the entry into an indexable item. Courses without an id get
// one derived from their embedding text.
func (c CatalogCourse) Item() (retrieval.Item, error) {
	level := core.LevelBeginner
	if strings.TrimSpace(c.Level) != "" {
		parsed, ok := core.ParseLevel(c.Level)
		if !ok {
			return retrieval.Item{}, fmt.Errorf("%w: %q: %w %q", core.ErrInvalidCourse, c.Title, core.ErrInvalidLevel, c.Level)
		}
		level = parsed
	}

	doc := c.Document()
	id := strings.TrimSpace(c.ID)
	if id == "" {
		id = fmt.Sprintf("course-%016x", uint64(core.IDFromContent(doc)))
	}

	course := core.Course{
		ID:            id,
		Title:         strings.TrimSpace(c.Title),
		Description:   c.Description,
		Level:         level,
		Category:      c.Category,
		Tags:          nonNil(c.Tags),
		Price:         c.Price,
		Rating:        c.Rating,
		StudentsCount: c.StudentsCount,
		Instructor:    c.Instructor,
		Features:      nonNil(c.Features),
	}
	if err := core.ValidateCourse(&course); err != nil {
		return retrieval.Item{}, err
	}
	return retrieval.Item{Course: course, Document: doc}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
