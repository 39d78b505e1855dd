// Package json is the JSON codec used on the wire and on disk. It uses sonic
// on amd64/arm64 and falls back to encoding/json elsewhere.
package json

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"io"
	"runtime"

	"github.com/bytedance/sonic"
)

var (
	// Marshal encodes v into JSON bytes.
	Marshal func(v any) ([]byte, error)

	// MarshalIndent encodes v with two-space indentation, for files people read.
	MarshalIndent func(v any, prefix, indent string) ([]byte, error)

	// Unmarshal decodes JSON bytes into v.
	Unmarshal func(data []byte, v any) error

	// UnmarshalNumber decodes like Unmarshal but keeps every number held in
	// an interface value as a Number, so integers beyond 2^53 survive.
	UnmarshalNumber func(data []byte, v any) error

	// Valid reports whether data is a valid JSON document.
	Valid func(data []byte) bool

	usingSonic bool
)

// Number is the literal text of a JSON number decoded by UnmarshalNumber.
type Number = stdjson.Number

func init() {
	if runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64" {
		api := sonic.ConfigStd
		Marshal = api.Marshal
		MarshalIndent = api.MarshalIndent
		Unmarshal = api.Unmarshal
		Valid = api.Valid
		UnmarshalNumber = sonic.Config{
			EscapeHTML:       true,
			SortMapKeys:      true,
			CompactMarshaler: true,
			CopyString:       true,
			ValidateString:   true,
			UseNumber:        true,
		}.Froze().Unmarshal
		usingSonic = true
		return
	}
	Marshal = stdjson.Marshal
	MarshalIndent = stdjson.MarshalIndent
	Unmarshal = stdjson.Unmarshal
	Valid = stdjson.Valid
	UnmarshalNumber = stdUnmarshalNumber
}

func stdUnmarshalNumber(data []byte, v any) error {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid character after top-level value")
	}
	return nil
}

// UsingSonic reports whether the sonic implementation is active.
func UsingSonic() bool { return usingSonic }
