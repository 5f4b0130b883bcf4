package report

import "strings"

// QueryExamples returns the fixed catalog of example SQL queries for the
// destination table.
func QueryExamples(table string) string {
	if table == "" {
		table = "netflix_titles"
	}
	return strings.ReplaceAll(queryTemplate, "{table}", table)
}

const queryTemplate = `-- Netflix Data Analysis - Example SQL Queries
-- Generated by the Netflix data engineering pipeline

-- 1. Basic content overview
SELECT
    type,
    COUNT(*) AS content_count,
    ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM {table}), 2) AS percentage
FROM {table}
GROUP BY type;

-- 2. Top 10 countries by content count
SELECT
    primary_country,
    COUNT(*) AS content_count
FROM {table}
WHERE primary_country IS NOT NULL
GROUP BY primary_country
ORDER BY content_count DESC
LIMIT 10;

-- 3. Content added by year
SELECT
    date_added_year,
    COUNT(*) AS titles_added
FROM {table}
WHERE date_added_year IS NOT NULL
GROUP BY date_added_year
ORDER BY date_added_year;

-- 4. Most popular genres
SELECT
    primary_genre,
    COUNT(*) AS title_count
FROM {table}
WHERE primary_genre IS NOT NULL
GROUP BY primary_genre
ORDER BY title_count DESC
LIMIT 15;

-- 5. Average movie duration by decade
SELECT
    decade,
    AVG(duration_value) AS avg_duration_minutes,
    COUNT(*) AS movie_count
FROM {table}
WHERE type = 'Movie' AND decade IS NOT NULL AND duration_value IS NOT NULL
GROUP BY decade
ORDER BY decade;

-- 6. Content by rating category
SELECT
    rating_category,
    type,
    COUNT(*) AS content_count
FROM {table}
WHERE rating_category IS NOT NULL
GROUP BY rating_category, type
ORDER BY rating_category, type;

-- 7. International vs domestic content by year
SELECT
    date_added_year,
    SUM(CASE WHEN is_international THEN 1 ELSE 0 END) AS international_content,
    SUM(CASE WHEN NOT is_international THEN 1 ELSE 0 END) AS domestic_content
FROM {table}
WHERE date_added_year IS NOT NULL
GROUP BY date_added_year
ORDER BY date_added_year;

-- 8. Longest and shortest content
SELECT
    title,
    type,
    duration_value,
    duration_unit,
    release_year
FROM {table}
WHERE duration_value IS NOT NULL
ORDER BY duration_value DESC
LIMIT 5;

SELECT
    title,
    type,
    duration_value,
    duration_unit,
    release_year
FROM {table}
WHERE duration_value IS NOT NULL AND duration_value > 0
ORDER BY duration_value ASC
LIMIT 5;

-- 9. Content with most diverse cast/crew
SELECT
    title,
    type,
    cast_count,
    director_count,
    country_count,
    genre_diversity
FROM {table}
WHERE cast_count > 0
ORDER BY (cast_count + director_count + country_count + genre_diversity) DESC
LIMIT 10;

-- 10. Recent additions analysis
SELECT
    title,
    type,
    primary_country,
    primary_genre,
    date_added,
    release_year,
    content_age_when_added
FROM {table}
WHERE date_added >= '2020-01-01'
ORDER BY date_added DESC
LIMIT 20;
`
