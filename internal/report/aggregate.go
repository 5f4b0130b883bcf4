// Package report computes descriptive aggregates over a cleaned dataset
// and renders them as PNG charts, a markdown analysis report and a catalog
// of example SQL queries. The reporter is purely derivative: it never
// feeds back into the pipeline, and individual artifact failures are
// reported and skipped rather than aborting the run.
package report

import (
	"sort"
	"time"

	"github.com/Thiago-code-lab/data-engineering-netflix/internal/catalog"
)

// TopN is how many entries top-grouping aggregates keep.
const TopN = 15

// NameCount is one bucket of a categorical distribution.
type NameCount struct {
	Name  string
	Count int
}

// ValueCount is one bucket of an integer-valued distribution.
type ValueCount struct {
	Value int
	Count int
}

// NumberSummary holds summary statistics for a numeric column.
type NumberSummary struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// TypeSplit is a per-category movie/series breakdown.
type TypeSplit struct {
	Name    string
	Movies  int
	TVShows int
}

// Summary holds every aggregate the reporter derives from a dataset.
type Summary struct {
	TotalTitles  int
	Movies       int
	TVShows      int
	MoviePercent float64

	MovieDurations []float64 // minutes, movies with a parsed duration
	MovieDuration  *NumberSummary
	SeasonCounts   []ValueCount

	AdditionsByYear []ValueCount
	FirstAdded      time.Time
	LastAdded       time.Time
	ReleaseYears    []float64
	EarliestRelease int
	LatestRelease   int
	DecadeCounts    []ValueCount
	ContentAges     []float64 // non-negative ages only
	ContentAge      *NumberSummary

	TopCountries         []NameCount
	TopCountryTypes      []TypeSplit
	UniqueCountries      int
	InternationalCount   int
	InternationalPercent float64
	CountryDiversity     []ValueCount // unique primary countries per year added

	TopGenres         []NameCount
	UniqueGenres      int
	GenreDiversity    []ValueCount
	AvgGenresPerTitle float64

	RatingCategories    []NameCount
	RatingCategoryTypes []TypeSplit

	Quality *catalog.QualityReport
}

// Summarize computes the full aggregate set for a dataset.
func Summarize(ds *catalog.Dataset) *Summary {
	s := &Summary{
		TotalTitles: ds.Len(),
		Quality:     ds.Quality(),
	}

	addYears := map[int]int{}
	seasons := map[int]int{}
	decades := map[int]int{}
	countries := map[string]int{}
	countryTypes := map[string]*TypeSplit{}
	countriesByYear := map[int]map[string]struct{}{}
	genres := map[string]int{}
	diversity := map[int]int{}
	categories := map[string]int{}
	categoryTypes := map[string]*TypeSplit{}
	genreTotal := 0
	genreTitles := 0

	for i := range ds.Titles {
		t := &ds.Titles[i]

		isMovie := t.Type == "Movie"
		if isMovie {
			s.Movies++
		} else {
			s.TVShows++
		}

		if t.DurationValue.Valid {
			if isMovie {
				s.MovieDurations = append(s.MovieDurations, t.DurationValue.Float64)
			} else {
				seasons[int(t.DurationValue.Float64)]++
			}
		}

		if t.DateAdded.Valid {
			if s.FirstAdded.IsZero() || t.DateAdded.Time.Before(s.FirstAdded) {
				s.FirstAdded = t.DateAdded.Time
			}
			if t.DateAdded.Time.After(s.LastAdded) {
				s.LastAdded = t.DateAdded.Time
			}
		}
		if t.DateAddedYear.Valid {
			year := int(t.DateAddedYear.Int32)
			addYears[year]++
			if t.PrimaryCountry.Valid {
				set := countriesByYear[year]
				if set == nil {
					set = map[string]struct{}{}
					countriesByYear[year] = set
				}
				set[t.PrimaryCountry.String] = struct{}{}
			}
		}
		if t.ReleaseYear.Valid {
			s.ReleaseYears = append(s.ReleaseYears, float64(t.ReleaseYear.Int32))
		}
		if t.Decade.Valid {
			decades[int(t.Decade.Int32)]++
		}
		if t.ContentAge.Valid && t.ContentAge.Int32 >= 0 {
			s.ContentAges = append(s.ContentAges, float64(t.ContentAge.Int32))
		}

		if t.PrimaryCountry.Valid {
			countries[t.PrimaryCountry.String]++
			split := countryTypes[t.PrimaryCountry.String]
			if split == nil {
				split = &TypeSplit{Name: t.PrimaryCountry.String}
				countryTypes[t.PrimaryCountry.String] = split
			}
			if isMovie {
				split.Movies++
			} else {
				split.TVShows++
			}
		}
		if t.IsInternational {
			s.InternationalCount++
		}

		if t.PrimaryGenre.Valid {
			genres[t.PrimaryGenre.String]++
		}
		if t.GenreDiversity > 0 {
			diversity[int(t.GenreDiversity)]++
			genreTotal += int(t.GenreDiversity)
			genreTitles++
		}

		categories[t.RatingCategory]++
		split := categoryTypes[t.RatingCategory]
		if split == nil {
			split = &TypeSplit{Name: t.RatingCategory}
			categoryTypes[t.RatingCategory] = split
		}
		if isMovie {
			split.Movies++
		} else {
			split.TVShows++
		}
	}

	if s.TotalTitles > 0 {
		s.MoviePercent = float64(s.Movies) / float64(s.TotalTitles) * 100
		s.InternationalPercent = float64(s.InternationalCount) / float64(s.TotalTitles) * 100
	}

	s.MovieDuration = summarize(s.MovieDurations)
	s.ContentAge = summarize(s.ContentAges)
	if len(s.ReleaseYears) > 0 {
		rs := summarize(s.ReleaseYears)
		s.EarliestRelease = int(rs.Min)
		s.LatestRelease = int(rs.Max)
	}

	s.SeasonCounts = sortedValueCounts(seasons)
	s.AdditionsByYear = sortedValueCounts(addYears)
	s.DecadeCounts = sortedValueCounts(decades)
	s.GenreDiversity = sortedValueCounts(diversity)
	s.TopCountries = topCounts(countries, TopN)
	s.UniqueCountries = len(countries)
	s.TopGenres = topCounts(genres, TopN)
	s.UniqueGenres = len(genres)
	s.RatingCategories = topCounts(categories, len(categories))
	if genreTitles > 0 {
		s.AvgGenresPerTitle = float64(genreTotal) / float64(genreTitles)
	}

	for year, set := range countriesByYear {
		s.CountryDiversity = append(s.CountryDiversity, ValueCount{Value: year, Count: len(set)})
	}
	sort.Slice(s.CountryDiversity, func(i, j int) bool {
		return s.CountryDiversity[i].Value < s.CountryDiversity[j].Value
	})

	for _, nc := range topCounts(countries, 5) {
		s.TopCountryTypes = append(s.TopCountryTypes, *countryTypes[nc.Name])
	}
	for _, nc := range s.RatingCategories {
		s.RatingCategoryTypes = append(s.RatingCategoryTypes, *categoryTypes[nc.Name])
	}

	return s
}

func summarize(vals []float64) *NumberSummary {
	if len(vals) == 0 {
		return nil
	}
	sum := 0.0
	min, max := vals[0], vals[0]
	for _, v := range vals {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &NumberSummary{
		Count: len(vals),
		Mean:  sum / float64(len(vals)),
		Min:   min,
		Max:   max,
	}
}

// topCounts returns the n largest buckets, counts descending, ties broken
// by name ascending for stable output.
func topCounts(counts map[string]int, n int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortedValueCounts(counts map[int]int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
