// Package serialization abstracts the canonical encoding used for cached
// values. The encoded length of a value doubles as its approximate size for
// the store's memory accounting.
package serialization

import "io"

const (
	// JSONType selects JSON encoding.
	JSONType = "json"
	// GobType selects gob encoding.
	GobType = "gob"
)

// Decoder reads one encoded value into v.
type Decoder interface {
	Decode(v any) error
}

// Encoder writes one value in encoded form.
type Encoder interface {
	Encode(v any) error
}

// EncoderFactory builds an Encoder over w.
type EncoderFactory func(w io.Writer) Encoder

// DecoderFactory builds a Decoder over r.
type DecoderFactory func(r io.Reader) Decoder
