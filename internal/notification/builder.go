// Package notification turns renderer-provided notification payloads into
// renderable notifications. Plain-text payloads are "upconverted" into a
// data:text/html URL built from embedded templates; HTML payloads pass their
// contents URL through untouched.
package notification

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/bnema/siteperm/internal/application/port"
	"github.com/bnema/siteperm/internal/domain/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template files, selected by payload shape: an icon gets the icon layout,
// a missing title or body collapses to one line, otherwise two lines.
const (
	tmplIcon    = "icon.html"
	tmplOneLine = "one_line.html"
	tmplTwoLine = "two_line.html"
)

// Builder renders notification payloads. Safe for concurrent use.
type Builder struct {
	tmpl          *template.Template
	labels        port.OriginLabeler // optional
	maxBodyLength int                // 0 means unlimited
}

// NewBuilder parses the embedded templates. labels may be nil; origins then
// always display as their host. maxBodyLength truncates plain-text bodies
// (rune count) before rendering; zero disables truncation.
func NewBuilder(labels port.OriginLabeler, maxBodyLength int) (*Builder, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("notification: parse templates: %w", err)
	}
	return &Builder{tmpl: tmpl, labels: labels, maxBodyLength: maxBodyLength}, nil
}

// Build produces the renderable notification for params.
func (b *Builder) Build(ctx context.Context, params entity.NotificationParams) (entity.Notification, error) {
	contents := params.ContentsURL
	if !params.IsHTML {
		var err error
		contents, err = b.DataURL(params)
		if err != nil {
			return entity.Notification{}, err
		}
	}
	return entity.Notification{
		Origin:      params.Origin,
		ContentsURL: contents,
		DisplayName: b.DisplayNameForOrigin(ctx, params.Origin),
		ReplaceID:   params.ReplaceID,
	}, nil
}

// templateData covers all three layouts; each template reads the fields it
// needs. Title, Body and Line are escaped by html/template on render.
type templateData struct {
	IconURL   string
	Title     string
	Body      string
	Line      string
	LineClass string
	Float     string
	Dir       string
}

// DataURL renders the plain-text payload into a data:text/html;charset=utf-8
// URL. The rendered document is percent-encoded so the result survives being
// treated as an opaque URL.
func (b *Builder) DataURL(params entity.NotificationParams) (string, error) {
	data := templateData{
		IconURL: params.IconURL,
		Title:   params.Title,
		Body:    truncate(params.Body, b.maxBodyLength),
		Dir:     "ltr",
		Float:   "left",
	}
	if params.Direction == entity.TextDirectionRTL {
		data.Dir = "rtl"
		data.Float = "right"
	}

	name := tmplTwoLine
	switch {
	case params.IconURL != "":
		name = tmplIcon
	case params.Title == "" || params.Body == "":
		name = tmplOneLine
		if params.Title == "" {
			data.LineClass = "description"
			data.Line = data.Body
		} else {
			data.LineClass = "title"
			data.Line = params.Title
		}
	}

	var doc strings.Builder
	if err := b.tmpl.ExecuteTemplate(&doc, name, data); err != nil {
		return "", fmt.Errorf("notification: render %s: %w", name, err)
	}
	return "data:text/html;charset=utf-8," + escapeDocument(doc.String()), nil
}

// DisplayNameForOrigin resolves the user-visible source of a notification:
// the label-lookup result when one exists, the origin's host otherwise.
func (b *Builder) DisplayNameForOrigin(ctx context.Context, origin entity.Origin) string {
	if b.labels != nil {
		if label, ok := b.labels.LabelForOrigin(ctx, origin); ok {
			return label
		}
	}
	return origin.Host()
}

// escapeDocument percent-encodes a rendered document for embedding in a data:
// URL. QueryEscape encodes space as "+", which a data: URL consumer would
// render literally, so those become "%20".
func escapeDocument(doc string) string {
	return strings.ReplaceAll(url.QueryEscape(doc), "+", "%20")
}

// truncate limits s to max runes. Zero or negative max means no limit.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
