package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/coursematch/ai"
)

const analysisResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {"type": "array", "items": {"type": "string"}},
    "noun_phrases": {"type": "array", "items": {"type": "string"}},
    "tokens": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "text": {"type": "string"},
          "lemma": {"type": "string"},
          "pos": {"type": "string"}
        },
        "required": ["text", "lemma", "pos"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities", "noun_phrases", "tokens"],
  "additionalProperties": false
}`

const analysisPromptTemplate = `You are a part-of-speech tagger for short search queries about online courses.
Analyze the query and return JSON only.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
or text outside the object. Your output must exactly follow this schema:

%s

Rules:
- "entities" lists named technologies, languages, frameworks, products and organizations, lowercase.
- "noun_phrases" lists base noun chunks exactly as they appear in the query, lowercase.
- "tokens" lists every word of the query in order. "pos" must be one of: %s.
- "lemma" is the dictionary form of the word in lowercase.
- Keep technology names intact: "node.js", "c++", "ci/cd" are single tokens.
- The JSON must parse without errors; no trailing commas and no extra keys.

Example:
Input: "I want to learn Node.js backend development"
Output:
{
  "entities": ["node.js"],
  "noun_phrases": ["i", "node.js backend development"],
  "tokens": [
    {"text":"I","lemma":"i","pos":"PRON"},
    {"text":"want","lemma":"want","pos":"VERB"},
    {"text":"to","lemma":"to","pos":"PART"},
    {"text":"learn","lemma":"learn","pos":"VERB"},
    {"text":"Node.js","lemma":"node.js","pos":"PROPN"},
    {"text":"backend","lemma":"backend","pos":"NOUN"},
    {"text":"development","lemma":"development","pos":"NOUN"}
  ]
}

Example:
Input: "compare react vs angular"
Output:
{
  "entities": ["react", "angular"],
  "noun_phrases": ["react", "angular"],
  "tokens": [
    {"text":"compare","lemma":"compare","pos":"VERB"},
    {"text":"react","lemma":"react","pos":"PROPN"},
    {"text":"vs","lemma":"vs","pos":"ADP"},
    {"text":"angular","lemma":"angular","pos":"PROPN"}
  ]
}`

// buildSystemPrompt creates the system prompt with the tag set embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(analysisPromptTemplate,
		analysisResponseSchema,
		strings.Join(ai.PartOfSpeechTags, ", "))
}
