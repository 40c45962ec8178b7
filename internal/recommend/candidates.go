// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

// DefaultMinVoteCount is the popularity threshold. Movies need strictly more
// votes than this to be recommended.
const DefaultMinVoteCount = 700

// MergeCandidates combines per-genre fetch rounds into one list. Movies with
// VoteCount <= minVoteCount are dropped and duplicate IDs are collapsed, keeping
// the position of the first occurrence. The result is never nil and is not
// truncated; capping happens after ranking.
func MergeCandidates(rounds [][]Movie, minVoteCount int) []Movie {
	total := 0
	for _, round := range rounds {
		total += len(round)
	}

	merged := make([]Movie, 0, total)
	index := make(map[int64]int, total)

	for _, round := range rounds {
		for i := range round {
			m := round[i]
			if m.VoteCount <= minVoteCount {
				continue
			}
			if pos, seen := index[m.ID]; seen {
				merged[pos] = m
				continue
			}
			index[m.ID] = len(merged)
			merged = append(merged, m)
		}
	}

	return merged
}
