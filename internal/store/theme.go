package store

import "strings"

// Stock light theme used to fill unset style fields.
const (
	DefaultPrimary        = "#4f46e5"
	DefaultBackgroundFrom = "#ffffff"
	DefaultBackgroundTo   = "#f5f3ff"
	DefaultText           = "#111827"
	DefaultMode           = "light"
	DefaultFont           = "Inter"
)

// Theme is one stored UI theme record.
type Theme struct {
	Name           string `json:"name" bson:"name"`
	Primary        string `json:"primary" bson:"primary"`
	BackgroundFrom string `json:"background_from" bson:"background_from"`
	BackgroundTo   string `json:"background_to" bson:"background_to"`
	Text           string `json:"text" bson:"text"`
	Mode           string `json:"mode" bson:"mode"`
	Font           string `json:"font" bson:"font"`
}

// ApplyDefaults fills unset style fields. Name is never defaulted.
func (t *Theme) ApplyDefaults() {
	if t == nil {
		return
	}
	if strings.TrimSpace(t.Primary) == "" {
		t.Primary = DefaultPrimary
	}
	if strings.TrimSpace(t.BackgroundFrom) == "" {
		t.BackgroundFrom = DefaultBackgroundFrom
	}
	if strings.TrimSpace(t.BackgroundTo) == "" {
		t.BackgroundTo = DefaultBackgroundTo
	}
	if strings.TrimSpace(t.Text) == "" {
		t.Text = DefaultText
	}
	if strings.TrimSpace(t.Mode) == "" {
		t.Mode = DefaultMode
	}
	if strings.TrimSpace(t.Font) == "" {
		t.Font = DefaultFont
	}
}
