package transform

import "github.com/jackc/pgx/v5/pgtype"

// ratingCategories is the fixed rating-code classification table. Codes
// not listed here, including missing ratings, classify as "Other".
var ratingCategories = map[string]string{
	"G":        "Kids",
	"TV-Y":     "Kids",
	"TV-Y7":    "Kids",
	"TV-Y7-FV": "Kids",
	"PG":       "Family",
	"TV-G":     "Family",
	"TV-PG":    "Family",
	"PG-13":    "Teen",
	"TV-14":    "Teen",
	"R":        "Adult",
	"TV-MA":    "Adult",
	"NC-17":    "Adult",
}

// RatingCategory maps a rating code to its audience category.
func RatingCategory(rating pgtype.Text) string {
	if rating.Valid {
		if cat, ok := ratingCategories[rating.String]; ok {
			return cat
		}
	}
	return "Other"
}
