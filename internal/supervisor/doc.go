// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package supervisor runs the long-lived parts of moodreel under a
thejerf/suture/v4 supervisor tree.

The tree has three layers, each its own supervisor so a crash loop in one
layer does not restart the others:

	moodreel
	├── data-layer         catalog loader
	├── maintenance-layer  cache statistics reporter
	└── api-layer          HTTP server

Supervisor events are logged through sutureslog using the zerolog backed
slog handler from internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCatalogService(engine, catalogCfg, logger))
	tree.AddMaintenanceService(services.NewCacheStatsService(tmdbClient, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
