package winscm

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unsafe"
)

// errInteriorNUL rejects strings that cannot be represented as
// NUL-terminated wide strings.
var errInteriorNUL = errors.New("winscm: string contains an interior NUL")

// wideString encodes s as a NUL-terminated UTF-16 string and returns a
// pointer to its first unit, the form the Win32 W-suffixed calls expect.
func wideString(s string) (*uint16, error) {
	units, err := wideSlice(s)
	if err != nil {
		return nil, err
	}
	return &units[0], nil
}

// wideSlice encodes s as UTF-16 with a trailing NUL unit.
func wideSlice(s string) ([]uint16, error) {
	if strings.ContainsRune(s, 0) {
		return nil, errInteriorNUL
	}
	return utf16.Encode([]rune(s + "\x00")), nil
}

// stringFromWide decodes the NUL-terminated UTF-16 string at p. A nil
// pointer decodes as the empty string.
func stringFromWide(p *uint16) string {
	if p == nil {
		return ""
	}
	n := 0
	for ptr := unsafe.Pointer(p); *(*uint16)(ptr) != 0; ptr = unsafe.Add(ptr, unsafe.Sizeof(*p)) {
		n++
	}
	return string(utf16.Decode(unsafe.Slice(p, n)))
}
