package report

import (
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 8 * vg.Inch
	histBins    = 30
)

var barWidth = vg.Points(18)

// contentTypeCharts renders the content-type analysis grid: type
// distribution, additions per year, movie-duration histogram and
// TV-season distribution.
func contentTypeCharts(s *Summary, path string) error {
	typeDist, err := barChart("Content Type Distribution", "Titles",
		[]string{"Movie", "TV Show"}, []float64{float64(s.Movies), float64(s.TVShows)})
	if err != nil {
		return err
	}

	additions, err := valueBarChart("Content Added by Year", "Year Added", "Titles", s.AdditionsByYear)
	if err != nil {
		return err
	}

	durations, err := histogram("Movie Duration Distribution", "Duration (minutes)", s.MovieDurations)
	if err != nil {
		return err
	}

	seasons, err := valueBarChart("TV Show Seasons Distribution", "Seasons", "Shows", s.SeasonCounts)
	if err != nil {
		return err
	}

	return saveGrid(path, [][]*plot.Plot{
		{typeDist, additions},
		{durations, seasons},
	})
}

// temporalCharts renders the temporal analysis grid.
func temporalCharts(s *Summary, path string) error {
	additions, err := lineChart("Content Added to Netflix by Year", "Year", "Titles Added", s.AdditionsByYear)
	if err != nil {
		return err
	}

	releases, err := histogram("Content Release Year Distribution", "Release Year", s.ReleaseYears)
	if err != nil {
		return err
	}

	ages, err := histogram("Content Age When Added", "Age (years)", s.ContentAges)
	if err != nil {
		return err
	}

	decades, err := valueBarChart("Content by Decade", "Decade", "Titles", s.DecadeCounts)
	if err != nil {
		return err
	}

	return saveGrid(path, [][]*plot.Plot{
		{additions, releases},
		{ages, decades},
	})
}

// geographicCharts renders the geographic analysis grid.
func geographicCharts(s *Summary, path string) error {
	topCountries, err := horizontalBarChart("Top Countries by Content Count", "Titles", s.TopCountries)
	if err != nil {
		return err
	}

	single := s.TotalTitles - s.InternationalCount
	intl, err := barChart("International Co-productions", "Titles",
		[]string{"Single Country", "Multiple Countries"},
		[]float64{float64(single), float64(s.InternationalCount)})
	if err != nil {
		return err
	}

	countryTypes, err := stackedTypeChart("Content Type by Top 5 Countries", s.TopCountryTypes)
	if err != nil {
		return err
	}

	diversity, err := lineChart("Country Diversity Over Time", "Year Added", "Unique Countries", s.CountryDiversity)
	if err != nil {
		return err
	}

	return saveGrid(path, [][]*plot.Plot{
		{topCountries, intl},
		{countryTypes, diversity},
	})
}

// genreCharts renders the genre analysis grid.
func genreCharts(s *Summary, path string) error {
	topGenres, err := horizontalBarChart("Top Primary Genres", "Titles", s.TopGenres)
	if err != nil {
		return err
	}

	diversity, err := valueBarChart("Genre Diversity Distribution", "Genres per Title", "Titles", s.GenreDiversity)
	if err != nil {
		return err
	}

	ratings, err := barChart("Content by Rating Category", "Titles",
		names(s.RatingCategories), counts(s.RatingCategories))
	if err != nil {
		return err
	}

	ratingTypes, err := stackedTypeChart("Content Type by Rating Category", s.RatingCategoryTypes)
	if err != nil {
		return err
	}

	return saveGrid(path, [][]*plot.Plot{
		{topGenres, diversity},
		{ratings, ratingTypes},
	})
}

func names(ncs []NameCount) []string {
	out := make([]string, len(ncs))
	for i, nc := range ncs {
		out[i] = nc.Name
	}
	return out
}

func counts(ncs []NameCount) []float64 {
	out := make([]float64, len(ncs))
	for i, nc := range ncs {
		out[i] = float64(nc.Count)
	}
	return out
}

func barChart(title, yLabel string, labels []string, values []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth)
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", title, err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func valueBarChart(title, xLabel, yLabel string, vcs []ValueCount) (*plot.Plot, error) {
	labels := make([]string, len(vcs))
	values := make([]float64, len(vcs))
	for i, vc := range vcs {
		labels[i] = strconv.Itoa(vc.Value)
		values[i] = float64(vc.Count)
	}
	p, err := barChart(title, yLabel, labels, values)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = xLabel
	return p, nil
}

func horizontalBarChart(title, xLabel string, ncs []NameCount) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel

	bars, err := plotter.NewBarChart(plotter.Values(counts(ncs)), barWidth)
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", title, err)
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(1)
	p.Add(bars)
	p.NominalY(names(ncs)...)
	return p, nil
}

func lineChart(title, xLabel, yLabel string, vcs []ValueCount) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(vcs))
	for i, vc := range vcs {
		pts[i].X = float64(vc.Value)
		pts[i].Y = float64(vc.Count)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("line chart %q: %w", title, err)
	}
	line.Color = plotutil.Color(2)
	p.Add(line, plotter.NewGrid())
	return p, nil
}

func histogram(title, xLabel string, values []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"

	if len(values) == 0 {
		return p, nil
	}
	h, err := plotter.NewHist(plotter.Values(values), histBins)
	if err != nil {
		return nil, fmt.Errorf("histogram %q: %w", title, err)
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)
	return p, nil
}

// stackedTypeChart draws movie counts stacked on TV-show counts per
// category.
func stackedTypeChart(title string, splits []TypeSplit) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Titles"

	movies := make(plotter.Values, len(splits))
	shows := make(plotter.Values, len(splits))
	labels := make([]string, len(splits))
	for i, split := range splits {
		movies[i] = float64(split.Movies)
		shows[i] = float64(split.TVShows)
		labels[i] = split.Name
	}

	showBars, err := plotter.NewBarChart(shows, barWidth)
	if err != nil {
		return nil, fmt.Errorf("stacked chart %q: %w", title, err)
	}
	showBars.Color = plotutil.Color(1)

	movieBars, err := plotter.NewBarChart(movies, barWidth)
	if err != nil {
		return nil, fmt.Errorf("stacked chart %q: %w", title, err)
	}
	movieBars.Color = plotutil.Color(0)
	movieBars.StackOn(showBars)

	p.Add(showBars, movieBars)
	p.Legend.Add("TV Show", showBars)
	p.Legend.Add("Movie", movieBars)
	p.Legend.Top = true
	p.NominalX(labels...)
	return p, nil
}

// saveGrid tiles plots into a 2x2 canvas and writes a PNG.
func saveGrid(path string, plots [][]*plot.Plot) error {
	img := vgimg.New(chartWidth, chartHeight)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return f.Close()
}
