// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/coursematch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyAnalysis is returned when the model answers without any choice.
var ErrEmptyAnalysis = errors.New("analyzer returned no choices")

// Analyzer implements ai.Analyzer using an OpenAI-compatible chat model in JSON mode.
type Analyzer struct {
	client      llms.Model
	maxAttempts int
	logger      *slog.Logger
}

var _ ai.Analyzer = (*Analyzer)(nil)

// token and analysisResponse mirror the JSON schema given to the model.
type token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
}

type analysisResponse struct {
	Entities    []string `json:"entities"`
	NounPhrases []string `json:"noun_phrases"`
	Tokens      []token  `json:"tokens"`
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.AnalyzerHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.AnalyzerModel),
	)
	if err != nil {
		return nil, err
	}
	return newAnalyzerWithModel(client, config.MaxParseAttempts), nil
}

func newAnalyzerWithModel(client llms.Model, maxAttempts int) *Analyzer {
	return &Analyzer{
		client:      client,
		maxAttempts: max(1, maxAttempts),
		logger:      slog.Default().With("component", "openai-analyzer"),
	}
}

// NewAnalyzer creates a new query analyzer using the provided configuration.
//
// Returns ai.Analyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.Analyzer, error) {
	return newAnalyzer(config)
}

// Analyze asks the model for entities, noun phrases and tagged tokens.
// Malformed JSON is retried up to the configured attempt bound; transport
// errors are returned immediately.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*ai.Analysis, error) {
	text = scrubString(text)
	if text == "" {
		return &ai.Analysis{}, nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildSystemPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	var result analysisResponse
	var lastErr error
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}
		if len(response.Choices) < 1 {
			return nil, ErrEmptyAnalysis
		}

		responseText := repairJSON(stripCodeFence(response.Choices[0].Content))
		parsed, err := parseAnalysis(responseText)
		if err != nil {
			lastErr = err
			a.logger.Warn("error parsing analyzer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}
		result, lastErr = parsed, nil
		break
	}

	if lastErr != nil {
		a.logger.Error("failed to parse analyzer response after retries", "err", lastErr)
		return nil, lastErr
	}

	analysis := toAnalysis(result)
	a.logger.Debug("analyzed query",
		"entities", len(analysis.Entities),
		"noun_phrases", len(analysis.NounPhrases),
		"tokens", len(analysis.Tokens))
	return analysis, nil
}

// parseAnalysis decodes into a fresh value so a failed attempt leaves
// nothing behind for the next one.
func parseAnalysis(text string) (analysisResponse, error) {
	var r analysisResponse
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return analysisResponse{}, err
	}
	return r, nil
}

// toAnalysis lowercases phrases and lemmas and maps unknown tags to X.
func toAnalysis(r analysisResponse) *ai.Analysis {
	out := &ai.Analysis{
		Entities:    normalizePhrases(r.Entities),
		NounPhrases: normalizePhrases(r.NounPhrases),
		Tokens:      make([]ai.Token, 0, len(r.Tokens)),
	}
	for _, t := range r.Tokens {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		lemma := strings.ToLower(strings.TrimSpace(t.Lemma))
		if lemma == "" {
			lemma = strings.ToLower(text)
		}
		pos := strings.ToUpper(strings.TrimSpace(t.POS))
		if !slices.Contains(ai.PartOfSpeechTags, pos) {
			pos = "X"
		}
		out.Tokens = append(out.Tokens, ai.Token{Text: text, Lemma: lemma, POS: pos})
	}
	return out
}

func normalizePhrases(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.ToLower(strings.Join(strings.Fields(p), " ")); p != "" {
			out = append(out, p)
		}
	}
	return out
}
