// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

// Catalog genre IDs referenced by the emotion table.
const (
	GenreAction      GenreID = 28
	GenreAdventure   GenreID = 12
	GenreAnimation   GenreID = 16
	GenreComedy      GenreID = 35
	GenreCrime       GenreID = 80
	GenreDrama       GenreID = 18
	GenreFamily      GenreID = 10751
	GenreHorror      GenreID = 27
	GenreMusic       GenreID = 10402
	GenreMystery     GenreID = 9648
	GenreRomance     GenreID = 10749
	GenreScienceFict GenreID = 878
	GenreThriller    GenreID = 53
)

// emotionGenres is the hand-curated emotion to genre table. Order within a
// row is the order in which genres are queried.
var emotionGenres = map[EmotionLabel][]GenreID{
	EmotionAnger:    {GenreAction, GenreThriller, GenreCrime, GenreMystery},
	EmotionDisgust:  {GenreThriller, GenreAdventure, GenreCrime},
	EmotionFear:     {GenreHorror, GenreThriller, GenreCrime, GenreMystery},
	EmotionJoy:      {GenreComedy, GenreAdventure, GenreMusic, GenreFamily},
	EmotionSadness:  {GenreDrama, GenreRomance},
	EmotionSurprise: {GenreAction, GenreAdventure, GenreAnimation, GenreMystery, GenreScienceFict},
}

// BuildQueryGenres returns the genres to query for an emotion label, or
// (nil, false) when the label is neutral, empty or unknown. Deciding what to
// do without a mapping is left to the caller.
func BuildQueryGenres(label EmotionLabel) ([]GenreID, bool) {
	genres, ok := emotionGenres[label.Normalize()]
	if !ok {
		return nil, false
	}
	out := make([]GenreID, len(genres))
	copy(out, genres)
	return out, true
}
