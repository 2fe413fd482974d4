package ai

// Universal part-of-speech tags used by Token.POS.
const (
	POSAdjective  = "ADJ"
	POSNoun       = "NOUN"
	POSProperNoun = "PROPN"
	POSPronoun    = "PRON"
	POSVerb       = "VERB"
)

// PartOfSpeechTags defines the valid values for Token.POS.
var PartOfSpeechTags = []string{
	"ADJ",
	"ADP",
	"ADV",
	"AUX",
	"CCONJ",
	"DET",
	"INTJ",
	"NOUN",
	"NUM",
	"PART",
	"PRON",
	"PROPN",
	"PUNCT",
	"SCONJ",
	"SYM",
	"VERB",
	"X",
}
