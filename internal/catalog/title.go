package catalog

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Title is one cleaned catalog entry plus its derived fields.
//
// Nullable fields use pgtype value types so that "missing" survives
// explicitly all the way into the database loader. The three critical
// fields (ShowID, Type, Title) are plain strings: rows where any of them
// is missing are dropped during basic cleaning, so a Title never carries
// an empty critical field.
type Title struct {
	ShowID string
	Type   string
	Title  string

	Director    pgtype.Text
	Cast        pgtype.Text
	Country     pgtype.Text
	Rating      pgtype.Text
	Duration    pgtype.Text
	ListedIn    pgtype.Text
	Description pgtype.Text

	// RawDateAdded and RawReleaseYear hold the source strings until the
	// date normalization pass consumes them. They are not loaded.
	RawDateAdded   string
	RawReleaseYear string

	DateAdded   pgtype.Date
	ReleaseYear pgtype.Int4

	// Derived during transformation.
	DateAddedYear      pgtype.Int4
	DateAddedMonth     pgtype.Int4
	DateAddedDayOfWeek pgtype.Text
	Decade             pgtype.Int4
	DurationValue      pgtype.Float8
	DurationUnit       pgtype.Text
	IsMovie            bool
	IsTVShow           bool
	CastCount          int32
	DirectorCount      int32
	CountryCount       int32
	ListedInCount      int32
	ContentAge         pgtype.Int4
	DescriptionLength  pgtype.Int4
	DescriptionWords   pgtype.Int4
	RatingCategory     string
	PrimaryCountry     pgtype.Text
	IsInternational    bool
	PrimaryGenre       pgtype.Text
	GenreDiversity     int32

	// Index is the dense row index assigned by final cleanup.
	Index int
}

// Dataset is the ordered, cleaned record set owned by exactly one pipeline
// stage at a time. Stages receive a Dataset and either return it enriched
// or fail; no stage shares it concurrently.
type Dataset struct {
	Titles []Title
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Titles)
}

// Fingerprint returns a canonical key over the cleaned input fields, used
// for exact-duplicate detection. Derived fields are deterministic functions
// of these, so two rows with equal fingerprints are exact duplicates.
func (t *Title) Fingerprint() string {
	parts := []string{
		t.ShowID, t.Type, t.Title,
		textKey(t.Director), textKey(t.Cast), textKey(t.Country),
		dateKey(t.DateAdded), intKey(t.ReleaseYear),
		textKey(t.Rating), textKey(t.Duration), textKey(t.ListedIn), textKey(t.Description),
	}
	return strings.Join(parts, "\x1f")
}

func textKey(v pgtype.Text) string {
	if !v.Valid {
		return "\x00"
	}
	return v.String
}

func dateKey(v pgtype.Date) string {
	if !v.Valid {
		return "\x00"
	}
	return v.Time.Format("2006-01-02")
}

func intKey(v pgtype.Int4) string {
	if !v.Valid {
		return "\x00"
	}
	return strconv.Itoa(int(v.Int32))
}

// Text wraps a non-empty string in a valid pgtype.Text; empty becomes null.
func Text(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// Int4 wraps an int in a valid pgtype.Int4.
func Int4(v int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(v), Valid: true}
}

// Float8 wraps a float in a valid pgtype.Float8.
func Float8(v float64) pgtype.Float8 {
	return pgtype.Float8{Float64: v, Valid: true}
}
