// Package file opens local export files as decoded byte streams. Legacy ERP
// systems commonly emit Windows-1252 or ISO-8859-1; decoding is handled here
// so the parser and everything behind it only ever sees UTF-8.
package file

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Source opens one export file.
type Source struct {
	// Path is the local filesystem path to the input file.
	Path string

	// Encoding names the source charset: "utf-8" (default), "windows-1252",
	// or "iso-8859-1".
	Encoding string
}

// Open returns a UTF-8 reader over the file plus a close function.
func (s Source) Open() (io.Reader, func() error, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open source %s: %w", s.Path, err)
	}

	enc, err := lookupEncoding(s.Encoding)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if enc == nil {
		return f, f.Close, nil
	}
	return transform.NewReader(f, enc.NewDecoder()), f.Close, nil
}

// lookupEncoding resolves a charset name. A nil encoding means the input is
// already UTF-8 and needs no transformation.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported source encoding %q", name)
	}
}
