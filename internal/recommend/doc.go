// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package recommend implements emotion driven movie recommendations.
//
// # Pipeline
//
// A request flows through these stages:
//
//	text -> EmotionClassifier -> BuildQueryGenres -> CandidateSource (per genre)
//	     -> MergeCandidates -> Rank (against the watch history) -> cap
//
// BuildQueryGenres, MergeCandidates and Rank are pure functions. They never
// block, never return errors and never mutate their inputs. Everything that
// talks to the network or to disk sits behind one of the collaborator
// interfaces (EmotionClassifier, CatalogSource, CandidateSource, HistoryStore)
// so the Engine can be driven by deterministic fakes in tests.
//
// # Ranking
//
// Every movie is embedded as a binary vector over the genre catalog, one
// dimension per catalog genre in ascending ID order. A candidate's similarity
// is the maximum cosine similarity against any watched movie. A zero vector
// scores 0 against everything, including another zero vector. With an empty
// watch history ranking is skipped and candidates keep their fetch order.
//
// The result cap (Config.MaxResults) is applied after ranking, so the
// response holds the best matches rather than the first ones fetched.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, recommend.Dependencies{
//	    Classifier: hf,
//	    Catalog:    tmdbClient,
//	    Candidates: tmdbClient,
//	    History:    store,
//	}, logger)
//	if err := engine.LoadCatalog(ctx); err != nil { ... }
//	resp, err := engine.Recommend(ctx, recommend.Request{UserKey: "ana", Text: "what a day"})
package recommend
