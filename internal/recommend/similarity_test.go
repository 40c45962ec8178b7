// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"math"
	"reflect"
	"testing"
)

const epsilon = 1e-9

func movie(id int64, genres ...GenreID) Movie {
	return Movie{ID: id, Title: "movie", GenreIDs: genres, VoteCount: 900}
}

func ids(ranked []RankedMovie) []int64 {
	out := make([]int64, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

func TestGenreVector(t *testing.T) {
	t.Parallel()

	keys := []GenreID{18, 28, 35}

	tests := []struct {
		name   string
		genres []GenreID
		want   []float64
	}{
		{"single", []GenreID{35}, []float64{0, 0, 1}},
		{"multiple", []GenreID{35, 18}, []float64{1, 0, 1}},
		{"unknown genre ignored", []GenreID{99, 28}, []float64{0, 1, 0}},
		{"duplicate genre", []GenreID{28, 28}, []float64{0, 1, 0}},
		{"no genres", nil, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GenreVector(tt.genres, keys); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenreVector(%v) = %v, want %v", tt.genres, got, tt.want)
			}
		})
	}

	if got := GenreVector([]GenreID{35}, nil); len(got) != 0 {
		t.Errorf("GenreVector with no keys = %v, want empty", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 1, 0}, []float64{1, 1, 0}, 1},
		{"orthogonal", []float64{1, 0, 0}, []float64{0, 1, 0}, 0},
		{"partial", []float64{1, 1, 0}, []float64{0, 1, 0}, 1 / math.Sqrt2},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"one zero", []float64{0, 0}, []float64{1, 0}, 0},
		{"length mismatch", []float64{1}, []float64{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
				t.Errorf("cosineSimilarity = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRank_EndToEndScenario(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(map[GenreID]string{28: "Action", 35: "Comedy", 18: "Drama"})
	history := []Movie{movie(100, 35)}
	candidates := []Movie{movie(1, 35), movie(2, 18), movie(3, 35, 18)}

	ranked := Rank(candidates, history, catalog.Keys())

	if got, want := ids(ranked), []int64{1, 3, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	wantSim := []float64{1.0, 1 / math.Sqrt2, 0.0}
	for i, r := range ranked {
		if !r.Scored {
			t.Errorf("movie %d: Scored = false, want true", r.ID)
		}
		if math.Abs(r.Similarity-wantSim[i]) > epsilon {
			t.Errorf("movie %d: similarity = %f, want %f", r.ID, r.Similarity, wantSim[i])
		}
	}
}

func TestRank_EmptyHistoryKeepsOrder(t *testing.T) {
	t.Parallel()

	keys := []GenreID{18, 28, 35}
	candidates := []Movie{movie(3, 18), movie(1, 35), movie(2, 28)}

	ranked := Rank(candidates, nil, keys)

	if got, want := ids(ranked), []int64{3, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for _, r := range ranked {
		if r.Scored {
			t.Errorf("movie %d: Scored = true with empty history", r.ID)
		}
		if r.Similarity != 0 {
			t.Errorf("movie %d: similarity = %f, want 0", r.ID, r.Similarity)
		}
	}
}

func TestRank_MaxOverHistory(t *testing.T) {
	t.Parallel()

	keys := []GenreID{18, 28, 35, 53}
	// One exact match must beat many partial matches.
	history := []Movie{movie(10, 28, 53), movie(11, 18, 35), movie(12, 18, 28)}
	candidates := []Movie{movie(1, 18, 35, 53), movie(2, 28, 53)}

	ranked := Rank(candidates, history, keys)

	if ranked[0].ID != 2 || math.Abs(ranked[0].Similarity-1) > epsilon {
		t.Errorf("first = %d (%f), want movie 2 with similarity 1", ranked[0].ID, ranked[0].Similarity)
	}
	// movie 1 vs movie 11: dot 2, |a|=sqrt3, |b|=sqrt2.
	if want := 2 / math.Sqrt(6); math.Abs(ranked[1].Similarity-want) > epsilon {
		t.Errorf("movie 1 similarity = %f, want %f", ranked[1].Similarity, want)
	}
}

func TestRank_StableTies(t *testing.T) {
	t.Parallel()

	keys := []GenreID{18, 35}
	history := []Movie{movie(100, 35)}
	candidates := []Movie{movie(5, 18), movie(4, 35), movie(3, 18), movie(2, 35), movie(1, 18)}

	ranked := Rank(candidates, history, keys)

	if got, want := ids(ranked), []int64{4, 2, 5, 3, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRank_DegenerateInputs(t *testing.T) {
	t.Parallel()

	keys := []GenreID{18, 35}

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		ranked := Rank(nil, []Movie{movie(1, 35)}, keys)
		if ranked == nil || len(ranked) != 0 {
			t.Errorf("Rank(nil) = %v, want empty non-nil slice", ranked)
		}
	})

	t.Run("genre-less movies score zero", func(t *testing.T) {
		t.Parallel()
		ranked := Rank([]Movie{movie(1)}, []Movie{movie(2)}, keys)
		if len(ranked) != 1 || ranked[0].Similarity != 0 || !ranked[0].Scored {
			t.Errorf("Rank = %+v, want one scored movie with similarity 0", ranked)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()
		ranked := Rank([]Movie{movie(1, 35)}, []Movie{movie(2, 35)}, nil)
		if ranked[0].Similarity != 0 {
			t.Errorf("similarity = %f, want 0", ranked[0].Similarity)
		}
	})
}

func TestRank_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	keys := []GenreID{18, 35}
	history := []Movie{movie(100, 35)}
	candidates := []Movie{movie(1, 18), movie(2, 35)}

	historyCopy := append([]Movie(nil), history...)
	candidatesCopy := append([]Movie(nil), candidates...)

	_ = Rank(candidates, history, keys)

	if !reflect.DeepEqual(history, historyCopy) {
		t.Error("history was mutated")
	}
	if !reflect.DeepEqual(candidates, candidatesCopy) {
		t.Error("candidates were reordered or mutated")
	}
}

func TestRank_SimilarityBounds(t *testing.T) {
	t.Parallel()

	keys := []GenreID{12, 16, 18, 27, 28, 35, 53, 80}
	history := []Movie{movie(100, 12, 16), movie(101, 27, 53, 80), movie(102)}
	candidates := []Movie{
		movie(1, 12, 16), movie(2, 16), movie(3, 28, 35, 53),
		movie(4), movie(5, 12, 16, 18, 27, 28, 35, 53, 80),
	}

	for _, r := range Rank(candidates, history, keys) {
		if r.Similarity < 0 || r.Similarity > 1 {
			t.Errorf("movie %d: similarity %f outside [0, 1]", r.ID, r.Similarity)
		}
	}
}
