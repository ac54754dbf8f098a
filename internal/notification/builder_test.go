package notification

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/siteperm/internal/application/port/mocks"
	"github.com/bnema/siteperm/internal/domain/entity"
)

const dataURLPrefix = "data:text/html;charset=utf-8,"

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder(nil, 0)
	require.NoError(t, err)
	return b
}

// decodeDataURL returns the rendered HTML document inside a data URL.
func decodeDataURL(t *testing.T, raw string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(raw, dataURLPrefix))
	doc, err := url.QueryUnescape(strings.TrimPrefix(raw, dataURLPrefix))
	require.NoError(t, err)
	return doc
}

func TestDataURLTemplateSelection(t *testing.T) {
	b := newTestBuilder(t)

	tests := []struct {
		name     string
		params   entity.NotificationParams
		contains []string
	}{
		{
			name:   "icon layout when an icon is present",
			params: entity.NotificationParams{IconURL: "https://example.com/i.png", Title: "Hi", Body: "There"},
			contains: []string{
				`src="https://example.com/i.png"`,
				`float: left`,
				`<div class="title">Hi</div>`,
				`<div class="description">There</div>`,
			},
		},
		{
			name:     "one line with title only",
			params:   entity.NotificationParams{Title: "Just a title"},
			contains: []string{`<div class="title">Just a title</div>`},
		},
		{
			name:     "one line with body only",
			params:   entity.NotificationParams{Body: "Just a body"},
			contains: []string{`<div class="description">Just a body</div>`},
		},
		{
			name:   "two lines with title and body",
			params: entity.NotificationParams{Title: "Hi", Body: "There"},
			contains: []string{
				`<div class="title">Hi</div>`,
				`<div class="description">There</div>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := b.DataURL(tt.params)
			require.NoError(t, err)
			doc := decodeDataURL(t, raw)
			for _, want := range tt.contains {
				assert.Contains(t, doc, want)
			}
		})
	}
}

func TestDataURLEscapesMarkup(t *testing.T) {
	b := newTestBuilder(t)

	raw, err := b.DataURL(entity.NotificationParams{
		Title: `<script>alert("x")</script>`,
		Body:  "a & b",
	})
	require.NoError(t, err)

	doc := decodeDataURL(t, raw)
	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "&lt;script&gt;")
	assert.Contains(t, doc, "a &amp; b")

	// No raw spaces or plus signs survive into the URL itself.
	payload := strings.TrimPrefix(raw, dataURLPrefix)
	assert.NotContains(t, payload, " ")
	assert.NotContains(t, payload, "+")
}

func TestDataURLRightToLeft(t *testing.T) {
	b := newTestBuilder(t)

	raw, err := b.DataURL(entity.NotificationParams{
		IconURL:   "https://example.com/i.png",
		Title:     "שלום",
		Body:      "עולם",
		Direction: entity.TextDirectionRTL,
	})
	require.NoError(t, err)

	doc := decodeDataURL(t, raw)
	assert.Contains(t, doc, `dir="rtl"`)
	assert.Contains(t, doc, `float: right`)
}

func TestDataURLTruncatesBody(t *testing.T) {
	b, err := NewBuilder(nil, 5)
	require.NoError(t, err)

	raw, err := b.DataURL(entity.NotificationParams{Title: "t", Body: "0123456789"})
	require.NoError(t, err)

	doc := decodeDataURL(t, raw)
	assert.Contains(t, doc, `<div class="description">01234</div>`)
}

func TestBuildHTMLNotificationPassesContentsThrough(t *testing.T) {
	b := newTestBuilder(t)

	n, err := b.Build(context.Background(), entity.NotificationParams{
		Origin:      "https://example.com",
		IsHTML:      true,
		ContentsURL: "https://example.com/notify.html",
		ReplaceID:   "r1",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/notify.html", n.ContentsURL)
	assert.Equal(t, "example.com", n.DisplayName)
	assert.Equal(t, "r1", n.ReplaceID)
}

func TestBuildUpconvertsTextNotification(t *testing.T) {
	b := newTestBuilder(t)

	n, err := b.Build(context.Background(), entity.NotificationParams{
		Origin: "https://example.com",
		Title:  "Hi",
		Body:   "There",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(n.ContentsURL, dataURLPrefix))
}

func TestDisplayNameUsesLabeler(t *testing.T) {
	labels := portmocks.NewMockOriginLabeler(t)
	labels.EXPECT().LabelForOrigin(mock.Anything, entity.Origin("ext://abcd")).
		Return("My Extension", true).Once()
	labels.EXPECT().LabelForOrigin(mock.Anything, entity.Origin("https://example.com")).
		Return("", false).Once()

	b, err := NewBuilder(labels, 0)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, "My Extension", b.DisplayNameForOrigin(ctx, "ext://abcd"))
	assert.Equal(t, "example.com", b.DisplayNameForOrigin(ctx, "https://example.com"))
}
