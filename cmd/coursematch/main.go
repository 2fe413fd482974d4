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

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "coursematch",
		Usage: "Course recommendation engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"COURSEMATCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides log.level",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the index directory; overrides storage.path",
			},
		},
		Before: loadConfig,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP recommendation service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "Listen port; overrides server.port",
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Index a JSON course catalog",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Catalog file; defaults to catalog.path",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-index even if the catalog is unchanged",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Index the built-in sample catalog",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-index even if already seeded",
					},
				},
			},
			{
				Name:      "recommend",
				Usage:     "Print recommendations for a query as JSON",
				ArgsUsage: "QUERY",
				Action:    recommendCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "chip",
						Usage: "UI chip to add to the query (repeatable)",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of recommendations; defaults to engine.max_results",
					},
					&cli.Float64Flag{
						Name:  "min-confidence",
						Usage: "Minimum confidence in [0,1]; defaults to engine.min_confidence",
						Value: -1,
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "User id passed through to the engine",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show index size and catalog checkpoint",
				Action: statusCommand,
			},
		},
	}
}
