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

package ingestion

import (
	"context"

	"github.com/poiesic/coursematch/retrieval"
)

// Indexer embeds and stores items. retrieval.Retriever implements it.
type Indexer interface {
	AddItems(ctx context.Context, items ...retrieval.Item) (int, error)
}

// processor handles one batch of catalog items.
type processor interface {
	// process indexes the batch and returns how many items were stored.
	process(ctx context.Context, batch []retrieval.Item) (int, error)
}
