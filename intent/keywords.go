package intent

import "github.com/poiesic/coursematch/core"

// categoryKeywords is the curated category table, in lookup order.
// A keyword listed under two categories belongs to the later one but keeps
// the position of its first listing.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"programming", []string{"python", "javascript", "java", "c++", "c#", "ruby", "php", "swift", "kotlin", "go", "golang", "rust", "typescript"}},
	{"data_science", []string{"data science", "machine learning", "deep learning", "ai", "artificial intelligence", "data analysis", "pandas", "numpy", "tensorflow", "pytorch"}},
	{"web_development", []string{"html", "css", "react", "angular", "vue", "node.js", "nodejs", "django", "flask", "spring", "express", "backend", "frontend", "fullstack", "full stack", "api"}},
	{"mobile_development", []string{"android", "ios", "react native", "flutter", "swift", "kotlin"}},
	{"cloud", []string{"aws", "azure", "google cloud", "docker", "kubernetes", "devops", "ci/cd"}},
	{"databases", []string{"sql", "mysql", "postgresql", "mongodb", "redis", "cassandra", "oracle"}},
	{"design", []string{"ui/ux", "figma", "sketch", "adobe xd", "photoshop", "illustrator"}},
	{"business", []string{"project management", "agile", "scrum", "product management", "business analysis"}},
	{"marketing", []string{"digital marketing", "seo", "social media", "content marketing", "email marketing"}},
}

type tableEntry struct {
	keyword  string
	category string
}

// keywordTable flattens categoryKeywords into lookup order.
var keywordTable = buildKeywordTable()

func buildKeywordTable() []tableEntry {
	var entries []tableEntry
	index := make(map[string]int)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if i, ok := index[kw]; ok {
				entries[i].category = group.category
				continue
			}
			index[kw] = len(entries)
			entries = append(entries, tableEntry{keyword: kw, category: group.category})
		}
	}
	return entries
}

// Level indicator words, checked in this order.
var levelWords = []struct {
	level core.Level
	words []string
}{
	{core.LevelBeginner, []string{"beginner", "beginners", "basic", "basics", "introduction", "intro", "getting started"}},
	{core.LevelAdvanced, []string{"advanced", "expert", "master"}},
	{core.LevelIntermediate, []string{"intermediate", "medium"}},
}

// Intent markers by priority; the first tier with any match wins.
var intentTiers = []struct {
	intent  core.IntentType
	markers []string
}{
	{core.IntentLearn, []string{"how to", "learn", "learning", "tutorial", "guide"}},
	{core.IntentBuild, []string{"build", "building", "create", "make", "develop"}},
	{core.IntentCompare, []string{"compare", "comparison", "vs", "versus", "difference"}},
	{core.IntentExplore, []string{"explore", "discover", "find", "search", "look for", "check"}},
}

// pronouns never count as keywords on the analyzer path.
var pronouns = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "we": {}, "our": {}, "you": {}, "your": {}, "it": {}, "its": {},
}
