package intent

import (
	"strings"

	"github.com/poiesic/coursematch/ai"
)

// fromAnalysis maps linguistic structure to keywords and topics.
//
// Topics are entities plus multi-word noun phrases longer than three
// characters. Keywords are entities, noun phrases and the lemmas of nouns,
// proper nouns and adjectives longer than two characters. Pronouns never
// count.
func fromAnalysis(a *ai.Analysis) (keywords, topics []string) {
	for _, ent := range a.Entities {
		ent = normalize(ent)
		if ent == "" || isPronoun(ent) {
			continue
		}
		topics = append(topics, ent)
		keywords = append(keywords, ent)
	}

	for _, phrase := range a.NounPhrases {
		phrase = normalize(phrase)
		if phrase == "" || isPronoun(phrase) {
			continue
		}
		if strings.Contains(phrase, " ") && len(phrase) > 3 {
			topics = append(topics, phrase)
		}
		keywords = append(keywords, phrase)
	}

	for _, tok := range a.Tokens {
		switch tok.POS {
		case ai.POSNoun, ai.POSProperNoun, ai.POSAdjective:
		default:
			continue
		}
		lemma := normalize(tok.Lemma)
		if lemma == "" {
			lemma = normalize(tok.Text)
		}
		if len(lemma) > 2 && !isPronoun(lemma) {
			keywords = append(keywords, lemma)
		}
	}
	return keywords, topics
}

func isPronoun(s string) bool {
	_, ok := pronouns[s]
	return ok
}
