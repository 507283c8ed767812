package translation

import "context"

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req Request) (*Result, error)
	Name() string
}

// Request describes one translation request.
type Request struct {
	Text   string
	Source string // ISO 639-1 code or "auto"; defaults to "auto" when empty
	Target string // ISO 639-1 code; the provider is the authority on supported codes
}

// Result contains the translated text.
type Result struct {
	Translated string
}
