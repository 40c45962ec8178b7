// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package tmdb

import "github.com/tomtom215/moodreel/internal/recommend"

// genreListResponse is the body of GET /genre/movie/list.
type genreListResponse struct {
	Genres []genreItem `json:"genres"`
}

type genreItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// discoverResponse is the body of GET /discover/movie.
type discoverResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type movieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	GenreIDs    []int   `json:"genre_ids"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
}

// toMovie converts a discover result. Missing genre lists become empty.
func (r *movieResult) toMovie() recommend.Movie {
	genres := make([]recommend.GenreID, len(r.GenreIDs))
	for i, id := range r.GenreIDs {
		genres[i] = recommend.GenreID(id)
	}

	var poster string
	if r.PosterPath != nil {
		poster = *r.PosterPath
	}

	return recommend.Movie{
		ID:          r.ID,
		Title:       r.Title,
		GenreIDs:    genres,
		Overview:    r.Overview,
		VoteAverage: r.VoteAverage,
		VoteCount:   r.VoteCount,
		ReleaseDate: r.ReleaseDate,
		PosterPath:  poster,
	}
}
