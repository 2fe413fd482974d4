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


// Package ai defines the AI collaborators of the matching engine.
//
//   - Embedder: turns course documents and queries into vectors
//   - Analyzer: tags a query with entities, noun phrases and parts of speech
//   - AIProvider: owns both and their shared configuration
//
// # Implementation Packages
//
//   - ai/openai: langchaingo clients for OpenAI-compatible servers
//   - ai/mock: deterministic test doubles
//
// Public constructors in ai/openai return interfaces. Mock constructors
// return concrete types so tests can inject behavior and read call counts:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("down")
//	}
//	count := embedder.CallCount()
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.NewConfig(ai.WithHost("http://localhost:11434")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "learn node.js backend")
//	analysis, err := provider.Analyzer().Analyze(ctx, "learn node.js backend")
package ai
