// Package source reads partner files into raw rows keyed by column name.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"eligibility/internal/models"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader errors.
var (
	ErrInvalidEncoding = errors.New("input is not valid for the declared encoding")
	ErrShortRow        = errors.New("row has fewer fields than header")
)

// RowError reports a problem confined to a single row. Reading can continue
// with the next call to Next.
type RowError struct {
	Err error
}

func (e *RowError) Error() string {
	return e.Err.Error()
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ShortRowError reports a row that ends before the last header column. The
// row returned with it holds the columns that were present; Missing lists the
// ones that were cut off, in header order.
type ShortRowError struct {
	Missing []string
	Line    int
}

func (e *ShortRowError) Error() string {
	return fmt.Sprintf("%s: line %d is missing %s", ErrShortRow, e.Line, strings.Join(e.Missing, ", "))
}

func (e *ShortRowError) Unwrap() error {
	return ErrShortRow
}

// Options describes the physical layout of a partner file.
type Options struct {
	Encoding  string
	Delimiter rune
	HasHeader bool
}

// Reader yields raw rows from a delimited file. It must be closed.
type Reader struct {
	file         *os.File
	csv          *csv.Reader
	digest       *xxhash.Digest
	path         string
	header       []string
	validateUTF8 bool
	done         bool
}

// Open opens path and, when the file declares one, consumes the header line.
func Open(path string, opts Options) (*Reader, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	digest := xxhash.New()
	tee := io.TeeReader(file, digest)

	var decoded io.Reader

	utf8Input := isUTF8(enc)
	if utf8Input {
		decoded = transform.NewReader(tee, unicode.BOMOverride(transform.Nop))
	} else {
		decoded = transform.NewReader(tee, unicode.BOMOverride(enc.NewDecoder()))
	}

	cr := csv.NewReader(decoded)
	cr.Comma = opts.Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	r := &Reader{
		file:         file,
		csv:          cr,
		digest:       digest,
		path:         path,
		validateUTF8: utf8Input,
	}

	if opts.HasHeader {
		if err := r.readHeader(); err != nil {
			file.Close()

			return nil, err
		}
	}

	return r, nil
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		r.done = true

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", r.path, err)
	}

	if err := r.checkUTF8(header); err != nil {
		return err
	}

	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	r.header = header

	return nil
}

// Next returns the next raw row, or io.EOF after the last one. A *RowError
// means the row could not be parsed, and a *ShortRowError accompanies a
// partially filled row. Reading can continue after either; any other error
// is fatal.
func (r *Reader) Next() (models.RawRow, error) {
	if r.done {
		return nil, io.EOF
	}

	record, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		r.done = true

		return nil, io.EOF
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return models.RawRow{}, &RowError{Err: parseErr}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	if err := r.checkUTF8(record); err != nil {
		return nil, err
	}

	if r.header == nil {
		row := make(models.RawRow, len(record))
		for i, v := range record {
			row[strconv.Itoa(i+1)] = v
		}

		return row, nil
	}

	row := make(models.RawRow, len(r.header))
	for i, name := range r.header {
		if i < len(record) {
			row[name] = record[i]
		}
	}

	// Fields past the last header column have no name and are dropped.
	if len(record) < len(r.header) {
		line, _ := r.csv.FieldPos(0)

		return row, &ShortRowError{Line: line, Missing: append([]string(nil), r.header[len(record):]...)}
	}

	return row, nil
}

func (r *Reader) checkUTF8(fields []string) error {
	if !r.validateUTF8 {
		return nil
	}

	for _, f := range fields {
		if !utf8.ValidString(f) {
			line, _ := r.csv.FieldPos(0)

			return fmt.Errorf("%w: %s line %d", ErrInvalidEncoding, r.path, line)
		}
	}

	return nil
}

// Header returns the column names read from the header line, if any.
func (r *Reader) Header() []string {
	return r.header
}

// Fingerprint returns the xxhash64 of the bytes consumed so far, in hex.
func (r *Reader) Fingerprint() string {
	return fmt.Sprintf("%016x", r.digest.Sum64())
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
