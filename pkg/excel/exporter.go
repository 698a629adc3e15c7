package excel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DataSource supplies one sheet of tabular data.
type DataSource interface {
	SheetName() string
	Headers() []string
	Rows(ctx context.Context) ([][]any, error)
}

type ExportOptions struct {
	BoldHeaders bool
	// MaxRows caps the exported rows; zero means unlimited.
	MaxRows int
	// DateFormat applies to time.Time cells.
	DateFormat string
}

func DefaultOptions() ExportOptions {
	return ExportOptions{
		BoldHeaders: true,
		DateFormat:  "2006-01-02 15:04",
	}
}

type Exporter struct {
	opts ExportOptions
}

func NewExporter(opts ExportOptions) *Exporter {
	return &Exporter{opts: opts}
}

// Export renders ds into an xlsx workbook.
func (e *Exporter) Export(ctx context.Context, ds DataSource) ([]byte, error) {
	rows, err := ds.Rows(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load rows")
	}
	if e.opts.MaxRows > 0 && len(rows) > e.opts.MaxRows {
		rows = rows[:e.opts.MaxRows]
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := ds.SheetName()
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}

	headers := ds.Headers()
	header := make([]any, len(headers))
	widths := make([]int, len(headers))
	for i, h := range headers {
		header[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	if e.opts.BoldHeaders && len(headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, errors.Wrap(err, "header style")
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return nil, errors.Wrap(err, "apply header style")
		}
	}

	for i, row := range rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = e.cellValue(v)
			if j < len(widths) {
				if n := len(fmt.Sprint(values[j])); n > widths[j] {
					widths[j] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, errors.Wrapf(err, "write row %d", i+1)
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, float64(min(w+2, 60))); err != nil {
			return nil, errors.Wrap(err, "set column width")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return bytes.Clone(buf.Bytes()), nil
}

func (e *Exporter) cellValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		if e.opts.DateFormat != "" {
			return t.Format(e.opts.DateFormat)
		}
		return t
	case nil:
		return ""
	default:
		return v
	}
}

// Filename builds "<prefix>-<yyyymmdd-hhmmss>.xlsx".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, now.Format("20060102-150405"))
}
