// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"math"
	"sort"
)

// GenreVector embeds a genre list as a binary vector over keys: dimension i
// is 1 when genres contains keys[i]. Genres missing from keys are ignored.
func GenreVector(genres []GenreID, keys []GenreID) []float64 {
	vec := make([]float64, len(keys))
	if len(genres) == 0 {
		return vec
	}

	present := make(map[GenreID]struct{}, len(genres))
	for _, g := range genres {
		present[g] = struct{}{}
	}
	for i, k := range keys {
		if _, ok := present[k]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// cosineSimilarity returns dot(a,b)/(|a||b|), or 0 when either vector has
// zero magnitude or the lengths differ.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return math.Min(dot/math.Sqrt(normA*normB), 1)
}

// Rank orders candidates by their best match against the watch history.
//
// Each candidate scores the maximum cosine similarity between its genre
// vector and any watched movie's vector, with catalogKeys fixing the vector
// basis. The result is sorted by descending similarity and ties keep their
// input order. An empty history skips scoring and returns the candidates in
// input order with Scored set to false. Neither input slice is modified.
func Rank(candidates []Movie, history []Movie, catalogKeys []GenreID) []RankedMovie {
	ranked := make([]RankedMovie, len(candidates))
	for i := range candidates {
		ranked[i] = RankedMovie{Movie: candidates[i]}
	}
	if len(history) == 0 || len(candidates) == 0 {
		return ranked
	}

	watched := make([][]float64, len(history))
	for i := range history {
		watched[i] = GenreVector(history[i].GenreIDs, catalogKeys)
	}

	for i := range ranked {
		vec := GenreVector(ranked[i].GenreIDs, catalogKeys)
		best := 0.0
		for _, w := range watched {
			if s := cosineSimilarity(vec, w); s > best {
				best = s
			}
		}
		ranked[i].Similarity = best
		ranked[i].Scored = true
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	return ranked
}
