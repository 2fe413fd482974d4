// Package intent turns a free-text course query into a core.UserIntent.
//
// Extraction has two paths. When an ai.Analyzer is configured, keywords and
// topics come from its entities, noun phrases and tagged tokens. Otherwise,
// or when the analyzer fails, a curated keyword table is scanned with
// word-boundary matching. Level and intent type always come from the curated
// indicator words. Extract never fails; the worst case is an intent with no
// keywords, the beginner level and the learn intent.
package intent
