package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Source reads a JSON dataset from disk. The file holds either
// {"sales": [...]} or a bare array of sales.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Load(ctx context.Context) ([]store.SaleRecord, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Str("path", s.path).Msg("failed to close sales file")
		}
	}()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	logger.Debug().Str("path", s.path).Int("records", len(records)).Msg("read sales file")
	return records, nil
}

// Decode parses either dataset shape from r. Rows are decoded one at a time;
// a row that does not fit store.SaleRecord is returned with DecodeErr set so
// the caller can skip it without losing the rest of the dataset.
func Decode(r io.Reader) ([]store.SaleRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sales data: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []store.SaleRecord{}, nil
	}

	var rows []json.RawMessage
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("decode sales array: %w", err)
		}
	} else {
		var doc store.SalesDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode sales document: %w", err)
		}
		rows = doc.Sales
	}

	records := make([]store.SaleRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, decodeRow(i, row))
	}
	return records, nil
}

func decodeRow(index int, row json.RawMessage) store.SaleRecord {
	var record store.SaleRecord
	if err := json.Unmarshal(row, &record); err != nil {
		// Keep whatever identifies the row for the skip log.
		var ident struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(row, &ident)
		return store.SaleRecord{
			ID:        ident.ID,
			DecodeErr: fmt.Errorf("row %d: %w", index, err),
		}
	}
	return record
}
