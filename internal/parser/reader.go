package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// charsets maps flag-value charset names to their decoders.
// CSDN-era Chinese dumps ship as GBK; western forum dumps are often
// Latin-1 rather than UTF-8.
var charsets = map[string]encoding.Encoding{
	"utf-8":      unicode.UTF8,
	"utf8":       unicode.UTF8,
	"gbk":        simplifiedchinese.GBK,
	"gb18030":    simplifiedchinese.GB18030,
	"latin-1":    charmap.ISO8859_1,
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
}

// SupportedCharsets returns the accepted charset names, for flag help
// and validation messages.
func SupportedCharsets() []string {
	return []string{"utf-8", "gbk", "gb18030", "latin-1"}
}

// NewDecodingReader wraps r so that reads yield UTF-8 regardless of the
// dump's source encoding. An empty charset means UTF-8 passthrough.
func NewDecodingReader(r io.Reader, charset string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" {
		return r, nil
	}
	enc, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("unsupported charset %q (want one of %s)",
			charset, strings.Join(SupportedCharsets(), ", "))
	}
	if enc == unicode.UTF8 {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
