package transform

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

var (
	// First run of digits anywhere in the duration string.
	durationValueRe = regexp.MustCompile(`(\d+)`)
	// Unit token must be the literal suffix of the string.
	durationUnitRe = regexp.MustCompile(`(min|Season|Seasons)$`)
)

// Pass 4: feature engineering. Derives duration value/unit and the
// movie/series flags, list-item counts, content age, description metrics
// and the rating category.
func engineerFeatures(ds *catalog.Dataset, stats *Stats) {
	for i := range ds.Titles {
		t := &ds.Titles[i]

		if t.Duration.Valid {
			if m := durationValueRe.FindStringSubmatch(t.Duration.String); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					t.DurationValue = catalog.Float8(v)
				}
			}
			if m := durationUnitRe.FindStringSubmatch(t.Duration.String); m != nil {
				t.DurationUnit = catalog.Text(m[1])
			}
		}
		if t.DurationUnit.Valid {
			switch t.DurationUnit.String {
			case "min":
				t.IsMovie = true
				stats.Movies++
			case "Season", "Seasons":
				t.IsTVShow = true
				stats.TVShows++
			}
		}

		t.CastCount = listCount(t.Cast.Valid, t.Cast.String)
		t.DirectorCount = listCount(t.Director.Valid, t.Director.String)
		t.CountryCount = listCount(t.Country.Valid, t.Country.String)
		t.ListedInCount = listCount(t.ListedIn.Valid, t.ListedIn.String)

		if t.DateAddedYear.Valid && t.ReleaseYear.Valid {
			t.ContentAge = catalog.Int4(int(t.DateAddedYear.Int32 - t.ReleaseYear.Int32))
		}

		if t.Description.Valid {
			t.DescriptionLength = catalog.Int4(utf8.RuneCountInString(t.Description.String))
			t.DescriptionWords = catalog.Int4(len(strings.Fields(t.Description.String)))
		}

		t.RatingCategory = RatingCategory(t.Rating)
	}
	slog.Info("feature engineering complete", "movies", stats.Movies, "tv_shows", stats.TVShows)
}

// listCount returns the item count of a comma-separated list column:
// zero when the value is missing, otherwise comma count plus one.
func listCount(valid bool, s string) int32 {
	if !valid {
		return 0
	}
	return int32(strings.Count(s, ",") + 1)
}

// sortTitles orders rows by date added then show id. Rows with a missing
// date sort strictly after all dated rows; the sort is stable on ties.
func sortTitles(titles []catalog.Title) {
	sort.SliceStable(titles, func(i, j int) bool {
		a, b := &titles[i], &titles[j]
		switch {
		case a.DateAdded.Valid && !b.DateAdded.Valid:
			return true
		case !a.DateAdded.Valid && b.DateAdded.Valid:
			return false
		case a.DateAdded.Valid && b.DateAdded.Valid:
			if !a.DateAdded.Time.Equal(b.DateAdded.Time) {
				return a.DateAdded.Time.Before(b.DateAdded.Time)
			}
		}
		return a.ShowID < b.ShowID
	})
}
