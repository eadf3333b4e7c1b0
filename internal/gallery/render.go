package gallery

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"imagescout/internal/model"
)

// Data drives the gallery template.
type Data struct {
	Title     string
	Query     string
	Slug      string
	Generated string // YYYY-MM-DD HH:MM, UTC
	Intro     string // optional AI-written paragraph
	Total     int
	Images    []model.ImageRecord
}

//go:embed gallery.tmpl
var galleryTpl string

var compiled = template.Must(template.New("gallery").Parse(galleryTpl))

// Render produces the Markdown gallery document with YAML frontmatter.
func Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildData assembles template data for one search result. titleTemplate may
// use the ExpandVars placeholders; when empty the title defaults to
// "Images of <query>". The slug doubles as the output file stem:
// gallery-<query-slug>-YYYYMMDD.
func BuildData(res model.QueryResult, titleTemplate, intro string, now time.Time) Data {
	title := ExpandVars(titleTemplate, res.Query, now)
	if title == "" {
		title = "Images of " + res.Query
	}
	slug := fmt.Sprintf("gallery-%s-%s", Slugify(res.Query), now.UTC().Format("20060102"))
	return Data{
		Title:     title,
		Query:     res.Query,
		Slug:      slug,
		Generated: now.UTC().Format("2006-01-02 15:04"),
		Intro:     intro,
		Total:     res.TotalImages,
		Images:    res.Images,
	}
}
