package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/credscan/internal/model"
)

// maxLineSize is the scanner buffer cap. Dump lines occasionally embed
// whole serialized blobs; 1MB accommodates them without unbounded growth.
const maxLineSize = 1024 * 1024

// Format identifies the line layout of a credential dump.
type Format int

const (
	// FormatAuto tries each known layout per line, most specific first.
	FormatAuto Format = iota
	// FormatColon is the colon-delimited layout, e.g.
	// "id:username:email:password" or "username:password".
	FormatColon
	// FormatHash is the hash-delimited layout used by CSDN-style dumps,
	// e.g. "username # password # email".
	FormatHash
)

// formatNames maps formats to their flag-value spellings.
var formatNames = map[Format]string{
	FormatAuto:  "auto",
	FormatColon: "colon",
	FormatHash:  "hash",
}

// String returns the flag-value spelling of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "colon":
		return FormatColon, nil
	case "hash":
		return FormatHash, nil
	default:
		return FormatAuto, fmt.Errorf("unknown dump format %q (want auto, colon, or hash)", s)
	}
}

// ErrEmptyLine reports a blank or whitespace-only input line.
var ErrEmptyLine = errors.New("parser: empty line")

// ErrUnparsableLine reports a line that matched no known layout.
var ErrUnparsableLine = errors.New("parser: unparsable line")

// Parser converts dump lines into records.
type Parser struct {
	source string
	format Format
}

// Option configures a Parser.
type Option func(*Parser)

// WithFormat forces a specific line layout instead of auto-detection.
func WithFormat(format Format) Option {
	return func(p *Parser) {
		p.format = format
	}
}

// New creates a Parser. The source label is stamped onto every record
// so downstream reports can attribute them.
func New(source string, opts ...Option) *Parser {
	p := &Parser{
		source: source,
		format: FormatAuto,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseLine converts a single dump line into a record.
// Returns ErrEmptyLine for blank lines and ErrUnparsableLine when no
// layout matches; callers treat both as skippable, not fatal.
func (p *Parser) ParseLine(line string) (model.Record, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.Record{}, ErrEmptyLine
	}

	var rec model.Record
	var ok bool
	switch p.format {
	case FormatColon:
		rec, ok = parseColon(line)
	case FormatHash:
		rec, ok = parseHash(line)
	default:
		// Hash first: a hash-delimited line never contains '#'-free
		// colon noise, while colon-splitting a hash line mangles it.
		if rec, ok = parseHash(line); !ok {
			rec, ok = parseColon(line)
		}
	}
	if !ok {
		// Whitespace-delimited fallback, then bare password.
		if rec, ok = parseWhitespace(line); !ok {
			rec = model.Record{Password: line}
		}
	}

	rec.Source = p.source
	fillFromEmail(&rec)
	if rec.IsEmpty() {
		return model.Record{}, ErrUnparsableLine
	}
	return rec, nil
}

// Parse reads every line from r. It returns the parsed records, the
// number of skipped (empty or unparsable) lines, and a read error if
// the underlying scan failed. Per-line parse failures are not errors.
func (p *Parser) Parse(r io.Reader) ([]model.Record, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []model.Record
	skipped := 0
	for scanner.Scan() {
		rec, err := p.ParseLine(scanner.Text())
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, skipped, fmt.Errorf("parser: read input: %w", err)
	}
	return records, skipped, nil
}

// parseColon handles colon-delimited layouts.
//
// Observed variants:
//
//	username:password
//	id:username:password
//	id:username:email:password
//
// The password is always the last field; the username is the second
// field when three or more fields are present, otherwise the first.
func parseColon(line string) (model.Record, bool) {
	fields := strings.Split(line, ":")
	if len(fields) < 2 {
		return model.Record{}, false
	}
	for i, f := range fields {
		fields[i] = stripQuotes(strings.TrimSpace(f))
	}

	var rec model.Record
	rec.Password = fields[len(fields)-1]
	if len(fields) >= 3 {
		rec.Username = fields[1]
	} else {
		rec.Username = fields[0]
	}
	for _, f := range fields[:len(fields)-1] {
		if strings.ContainsRune(f, '@') {
			rec.Email = f
			break
		}
	}
	// Some dumps put the email where the username goes.
	if rec.Email == "" && strings.ContainsRune(rec.Username, '@') {
		rec.Email = rec.Username
	}
	return rec, rec.Password != ""
}

// parseHash handles the "username # password # email" layout.
// Delimiters may or may not carry surrounding spaces.
func parseHash(line string) (model.Record, bool) {
	if !strings.ContainsRune(line, '#') {
		return model.Record{}, false
	}
	fields := strings.Split(line, "#")
	if len(fields) < 2 {
		return model.Record{}, false
	}
	for i, f := range fields {
		fields[i] = stripQuotes(strings.TrimSpace(f))
	}

	rec := model.Record{
		Username: fields[0],
		Password: fields[1],
	}
	if len(fields) >= 3 {
		rec.Email = fields[2]
	}
	return rec, rec.Password != ""
}

// parseWhitespace handles "username password" and
// "username password email" layouts separated by runs of whitespace.
func parseWhitespace(line string) (model.Record, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return model.Record{}, false
	}

	rec := model.Record{
		Username: stripQuotes(fields[0]),
		Password: stripQuotes(fields[1]),
	}
	if len(fields) == 3 {
		rec.Email = stripQuotes(fields[2])
	}
	return rec, rec.Password != ""
}

// fillFromEmail derives a missing username from the email local part,
// and recognizes an email stored in the username column.
func fillFromEmail(rec *model.Record) {
	if rec.Email == "" && strings.ContainsRune(rec.Username, '@') {
		rec.Email = rec.Username
	}
	if rec.Username == rec.Email && strings.ContainsRune(rec.Username, '@') {
		rec.Username = ""
	}
	if rec.Username == "" && rec.Email != "" {
		if at := strings.IndexByte(rec.Email, '@'); at > 0 {
			rec.Username = rec.Email[:at]
		}
	}
}

// stripQuotes removes one matching pair of surrounding single or double
// quotes. Dump exports from SQL tools often quote every field.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
