package stress

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrCharset indicates an unknown charset or a pivot it cannot represent.
var ErrCharset = errors.New("stress: charset")

// charsets maps the accepted --charset names to encoders.
var charsets = map[string]encoding.Encoding{
	"utf-8":      unicode.UTF8,
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"latin9":     charmap.ISO8859_15,
	"cp1252":     charmap.Windows1252,
	"cp437":      charmap.CodePage437,
	"cp850":      charmap.CodePage850,
	"koi8-r":     charmap.KOI8R,
	"macroman":   charmap.Macintosh,
}

// Charsets returns the accepted charset names, sorted.
func Charsets() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodePivot returns the bytes of pivot in the named charset. An empty name
// selects UTF-8. The result never contains a zero byte, since a zero marks
// the end of the copied text inside a payload.
func EncodePivot(pivot, charset string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" {
		name = "utf-8"
	}
	enc, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown charset %q", ErrCharset, charset)
	}
	s, err := enc.NewEncoder().String(pivot)
	if err != nil {
		return nil, fmt.Errorf("%w: pivot not representable in %s: %w", ErrCharset, name, err)
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, fmt.Errorf("%w: pivot contains a NUL at byte %d", ErrCharset, i)
	}
	return []byte(s), nil
}
