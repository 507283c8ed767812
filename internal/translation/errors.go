package translation

import "errors"

// Kind classifies a translation failure for transport mapping.
type Kind int

const (
	// KindInternal covers unanticipated failures (network errors and the like).
	KindInternal Kind = iota
	// KindInvalidInput marks a request the caller must fix.
	KindInvalidInput
	// KindBadGateway marks a provider error status or an unusable success body.
	KindBadGateway
	// KindGatewayTimeout marks a provider that did not answer in time.
	KindGatewayTimeout
)

// Error is a classified translation failure. Detail is safe to surface to the
// caller verbatim.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Detail
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// KindOf extracts the failure kind; unclassified errors count as internal.
func KindOf(err error) Kind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return KindInternal
}

// DetailOf extracts the caller-facing message for err.
func DetailOf(err error) string {
	var terr *Error
	if errors.As(err, &terr) && terr.Detail != "" {
		return terr.Detail
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
