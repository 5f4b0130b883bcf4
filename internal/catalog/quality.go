package catalog

// QualityReport summarizes completeness of a Dataset. It is embedded in
// the load report and the pipeline run report.
type QualityReport struct {
	TotalRows     int            `json:"total_rows"`
	TotalColumns  int            `json:"total_columns"`
	MissingValues map[string]int `json:"missing_values"`
	DuplicateRows int            `json:"duplicate_rows"`
}

// Quality computes a QualityReport for the dataset. Missing-value counts
// cover the nullable columns; critical fields are never missing by
// construction.
func (d *Dataset) Quality() *QualityReport {
	r := &QualityReport{
		TotalRows:     d.Len(),
		TotalColumns:  len(Columns),
		MissingValues: make(map[string]int),
	}

	seen := make(map[string]struct{}, d.Len())
	for i := range d.Titles {
		t := &d.Titles[i]

		fp := t.Fingerprint()
		if _, dup := seen[fp]; dup {
			r.DuplicateRows++
		} else {
			seen[fp] = struct{}{}
		}

		countMissing := func(col string, valid bool) {
			if !valid {
				r.MissingValues[col]++
			}
		}
		countMissing("director", t.Director.Valid)
		countMissing("cast", t.Cast.Valid)
		countMissing("country", t.Country.Valid)
		countMissing("date_added", t.DateAdded.Valid)
		countMissing("release_year", t.ReleaseYear.Valid)
		countMissing("rating", t.Rating.Valid)
		countMissing("duration", t.Duration.Valid)
		countMissing("listed_in", t.ListedIn.Valid)
		countMissing("description", t.Description.Valid)
		countMissing("date_added_year", t.DateAddedYear.Valid)
		countMissing("date_added_month", t.DateAddedMonth.Valid)
		countMissing("date_added_day_of_week", t.DateAddedDayOfWeek.Valid)
		countMissing("decade", t.Decade.Valid)
		countMissing("duration_value", t.DurationValue.Valid)
		countMissing("duration_unit", t.DurationUnit.Valid)
		countMissing("content_age_when_added", t.ContentAge.Valid)
		countMissing("description_length", t.DescriptionLength.Valid)
		countMissing("description_word_count", t.DescriptionWords.Valid)
		countMissing("primary_country", t.PrimaryCountry.Valid)
		countMissing("primary_genre", t.PrimaryGenre.Valid)
	}
	return r
}
