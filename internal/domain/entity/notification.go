package entity

// TextDirection controls how notification text is laid out.
type TextDirection int

const (
	// TextDirectionLTR lays text out left to right.
	TextDirectionLTR TextDirection = iota

	// TextDirectionRTL lays text out right to left.
	TextDirectionRTL
)

// NotificationParams carries the renderer-provided notification payload.
// HTML notifications supply ContentsURL directly; plain-text ones supply
// title/body/icon and are upconverted to a data: URL before display.
type NotificationParams struct {
	Origin      Origin
	IsHTML      bool
	ContentsURL string
	IconURL     string
	Title       string
	Body        string
	Direction   TextDirection
	ReplaceID   string
}

// Notification is the renderable result: a contents URL plus display metadata.
type Notification struct {
	Origin      Origin
	ContentsURL string
	DisplayName string
	ReplaceID   string
}
