package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"product-catalog/internal/domain"
)

// ProductWriter is the intake pipeline the importer feeds rows through.
// Every row gets the same validation and duplicate handling as a POST.
type ProductWriter interface {
	Create(ctx context.Context, record map[string]any) (*domain.Product, error)
}

// CSVImporter bulk-loads catalog rows from a CSV export. Expected
// headers: sku, name, price, type, plus whichever specific-attribute
// columns the row's type needs (size, weight, height, width, length).
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
	logger *log.Logger
}

func NewCSVImporter(r io.Reader, writer ProductWriter, logger *log.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CSVImporter{reader: csvr, writer: writer, logger: logger}
}

// Run parses CSV rows and feeds each through the create pipeline.
// Rows rejected by validation and rows whose SKU is already taken are
// skipped and counted; storage failures abort the run.
func (i *CSVImporter) Run(ctx context.Context) (imported, skipped int, err error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read headers: %w", err)
	}

	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("read row: %w", err)
		}
		line++

		row := recordFromCSV(headers, record)
		if len(row) == 0 {
			continue
		}

		if _, err := i.writer.Create(ctx, row); err != nil {
			if domain.IsValidation(err) {
				i.logger.Printf("importer: line %d skipped: %v", line, err)
				skipped++
				continue
			}
			return imported, skipped, fmt.Errorf("line %d: %w", line, err)
		}
		imported++
	}

	return imported, skipped, nil
}

// recordFromCSV pairs header names with cell values, dropping empty
// cells so absent attributes read as missing rather than empty strings.
func recordFromCSV(headers, record []string) map[string]any {
	row := make(map[string]any)
	for idx, header := range headers {
		if idx >= len(record) {
			break
		}
		key := strings.TrimSpace(strings.ToLower(header))
		value := strings.TrimSpace(record[idx])
		if key == "" || value == "" {
			continue
		}
		row[key] = value
	}
	return row
}
