// Package routing resolves phone numbers to gateway identifiers by scanning
// a two-column delimited record file.
package routing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/youmna-rabie/uid2gateway/internal/types"
)

// ErrMalformedRow is returned when a row has fewer than two fields.
var ErrMalformedRow = errors.New("row has fewer than two fields")

// Lookup scans a gateway file on every call. Nothing is cached between calls,
// so edits to the file are visible to the next lookup.
type Lookup struct {
	// Path is the record file. Rows are gateway,phone with no header.
	Path string
	// Comma is the field delimiter. Zero means ','.
	Comma  rune
	Logger *slog.Logger
}

// FindGateway returns the gateway of the first row whose phone number equals
// phone exactly. Rows after the first match are never read.
func (l *Lookup) FindGateway(phone string) types.Result {
	var (
		gateway string
		found   bool
	)
	err := l.scan(func(rec types.Record) bool {
		if rec.PhoneNumber == phone {
			gateway, found = rec.GatewayID, true
			return false
		}
		return true
	})
	if err != nil {
		l.logger().Error("error reading gateway file", "path", l.Path, "error", err)
		return types.ReadError(err)
	}
	if !found {
		l.logger().Debug("no gateway for phone number", "phone_number", phone)
		return types.NotFound()
	}
	return types.Found(gateway)
}

// Records returns every row of the file in order.
func (l *Lookup) Records() ([]types.Record, error) {
	var records []types.Record
	err := l.scan(func(rec types.Record) bool {
		records = append(records, rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// scan calls fn for each row until fn returns false or the file ends.
func (l *Lookup) scan(fn func(types.Record) bool) error {
	f, err := os.Open(l.Path)
	if err != nil {
		return fmt.Errorf("opening gateway file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = l.comma()
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parsing %s: %w", l.Path, err)
		}
		if len(row) < 2 {
			line, _ := r.FieldPos(0)
			return fmt.Errorf("%s line %d: %w", l.Path, line, ErrMalformedRow)
		}
		if !fn(types.Record{GatewayID: row[0], PhoneNumber: row[1]}) {
			return nil
		}
	}
}

func (l *Lookup) comma() rune {
	if l.Comma == 0 {
		return ','
	}
	return l.Comma
}

func (l *Lookup) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
