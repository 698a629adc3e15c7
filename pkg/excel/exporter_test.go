package excel

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type staticSource struct {
	rows [][]any
	err  error
}

func (s staticSource) SheetName() string { return "Partners" }
func (s staticSource) Headers() []string { return []string{"Code", "Name", "Updated"} }
func (s staticSource) Rows(context.Context) ([][]any, error) {
	return s.rows, s.err
}

func TestExporter_Export(t *testing.T) {
	updated := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	data, err := NewExporter(DefaultOptions()).Export(context.Background(), staticSource{rows: [][]any{
		{"P-1", "Acme", updated},
		{"P-2", "Globex", time.Time{}},
	}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows("Partners")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Code", "Name", "Updated"}, rows[0])
	require.Equal(t, []string{"P-1", "Acme", "2026-03-04 05:06"}, rows[1])
	require.Equal(t, []string{"P-2", "Globex"}, rows[2][:2], "zero times export as blank cells")
}

func TestExporter_MaxRows(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxRows = 1
	data, err := NewExporter(opts).Export(context.Background(), staticSource{rows: [][]any{{"a"}, {"b"}}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := f.GetRows("Partners")
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestExporter_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewExporter(DefaultOptions()).Export(context.Background(), staticSource{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestFilename(t *testing.T) {
	require.Equal(t, "partners-20260102-030405.xlsx", Filename("partners", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
}
