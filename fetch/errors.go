package fetch

import "fmt"

// ErrorKind classifies a per-source failure.
type ErrorKind string

const (
	// KindUnavailable covers transport failures and non-200 responses.
	KindUnavailable ErrorKind = "unavailable"
	// KindDecode covers malformed payloads (bad protobuf frame, unexpected
	// JSON shape).
	KindDecode ErrorKind = "decode"
)

// SourceError describes a failure of one source or one of its sub-feeds.
// These are recovered where they occur; they contribute zero records to the
// cycle but never abort it.
type SourceError struct {
	Source string
	Agency string
	Kind   ErrorKind
	Err    error
}

func (e *SourceError) Error() string {
	if e.Agency != "" {
		return fmt.Sprintf("%s %s: %s: %v", e.Source, e.Agency, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Unavailable wraps a transport or HTTP-status failure.
func Unavailable(source, agency string, err error) *SourceError {
	return &SourceError{Source: source, Agency: agency, Kind: KindUnavailable, Err: err}
}

// Decode wraps a payload-parse failure.
func Decode(source, agency string, err error) *SourceError {
	return &SourceError{Source: source, Agency: agency, Kind: KindDecode, Err: err}
}
