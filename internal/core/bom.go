package core

// bom.go handles the UTF-8 byte order mark.
//
// Windows spreadsheet tools prepend a BOM to exported text. Some receiving
// systems reject a file whose first field starts with one, so input readers
// skip it and output text never carries it.

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and drops a leading UTF-8 BOM.
type BOMSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{r: bufio.NewReader(r)}
}

// Read implements io.Reader. The first call checks for and discards the BOM.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.r.Peek(len(utf8BOM))
		if err != nil && err != io.EOF {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// StripBOM removes a leading U+FEFF from s.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
