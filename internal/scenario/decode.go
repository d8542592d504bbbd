package scenario

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText converts a scenario document to UTF-8. A UTF-8 or UTF-16 byte
// order mark selects that encoding and is stripped. Text without a BOM that
// is not valid UTF-8 is read as Windows-1252, which older map editors emit.
func decodeText(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}
	if utf8.Valid(out) {
		return out, nil
	}
	out, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}
	return out, nil
}
