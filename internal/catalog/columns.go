package catalog

// ColumnKind is the storage type of a dataset column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindDate
	KindInteger
	KindDouble
	KindBoolean
)

// Column describes one column of the cleaned dataset as seen by the
// loader and the reports. Categorical marks low-cardinality columns; the
// hint has no behavioral effect beyond the loader storing them as plain
// text.
type Column struct {
	Name        string
	Kind        ColumnKind
	Categorical bool
	Value       func(*Title) any
}

// Columns is the full ordered column set of the cleaned dataset. The
// loader derives its DDL and insert statements from this list, so column
// order here is column order in the destination table.
var Columns = []Column{
	{Name: "show_id", Kind: KindText, Value: func(t *Title) any { return t.ShowID }},
	{Name: "type", Kind: KindText, Categorical: true, Value: func(t *Title) any { return t.Type }},
	{Name: "title", Kind: KindText, Value: func(t *Title) any { return t.Title }},
	{Name: "director", Kind: KindText, Value: func(t *Title) any { return t.Director }},
	{Name: "cast", Kind: KindText, Value: func(t *Title) any { return t.Cast }},
	{Name: "country", Kind: KindText, Value: func(t *Title) any { return t.Country }},
	{Name: "date_added", Kind: KindDate, Value: func(t *Title) any { return t.DateAdded }},
	{Name: "release_year", Kind: KindInteger, Value: func(t *Title) any { return t.ReleaseYear }},
	{Name: "rating", Kind: KindText, Categorical: true, Value: func(t *Title) any { return t.Rating }},
	{Name: "duration", Kind: KindText, Value: func(t *Title) any { return t.Duration }},
	{Name: "listed_in", Kind: KindText, Value: func(t *Title) any { return t.ListedIn }},
	{Name: "description", Kind: KindText, Value: func(t *Title) any { return t.Description }},
	{Name: "date_added_year", Kind: KindInteger, Value: func(t *Title) any { return t.DateAddedYear }},
	{Name: "date_added_month", Kind: KindInteger, Value: func(t *Title) any { return t.DateAddedMonth }},
	{Name: "date_added_day_of_week", Kind: KindText, Categorical: true, Value: func(t *Title) any { return t.DateAddedDayOfWeek }},
	{Name: "decade", Kind: KindInteger, Value: func(t *Title) any { return t.Decade }},
	{Name: "duration_value", Kind: KindDouble, Value: func(t *Title) any { return t.DurationValue }},
	{Name: "duration_unit", Kind: KindText, Categorical: true, Value: func(t *Title) any { return t.DurationUnit }},
	{Name: "is_movie", Kind: KindBoolean, Value: func(t *Title) any { return t.IsMovie }},
	{Name: "is_tv_show", Kind: KindBoolean, Value: func(t *Title) any { return t.IsTVShow }},
	{Name: "cast_count", Kind: KindInteger, Value: func(t *Title) any { return t.CastCount }},
	{Name: "director_count", Kind: KindInteger, Value: func(t *Title) any { return t.DirectorCount }},
	{Name: "country_count", Kind: KindInteger, Value: func(t *Title) any { return t.CountryCount }},
	{Name: "listed_in_count", Kind: KindInteger, Value: func(t *Title) any { return t.ListedInCount }},
	{Name: "content_age_when_added", Kind: KindInteger, Value: func(t *Title) any { return t.ContentAge }},
	{Name: "description_length", Kind: KindInteger, Value: func(t *Title) any { return t.DescriptionLength }},
	{Name: "description_word_count", Kind: KindInteger, Value: func(t *Title) any { return t.DescriptionWords }},
	{Name: "rating_category", Kind: KindText, Categorical: true, Value: func(t *Title) any { return t.RatingCategory }},
	{Name: "primary_country", Kind: KindText, Value: func(t *Title) any { return t.PrimaryCountry }},
	{Name: "is_international", Kind: KindBoolean, Value: func(t *Title) any { return t.IsInternational }},
	{Name: "primary_genre", Kind: KindText, Value: func(t *Title) any { return t.PrimaryGenre }},
	{Name: "genre_diversity", Kind: KindInteger, Value: func(t *Title) any { return t.GenreDiversity }},
}

// ColumnNames returns the names of all dataset columns in order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}
