package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/draftboard/internal/domain/board"
	"github.com/okian/draftboard/internal/domain/model"
)

const sheetName = "Board"

// WriteCSV writes the header and one line per row. Absent values are empty.
func WriteCSV(w io.Writer, b *board.Board) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(b.Columns()); err != nil {
		return err
	}
	for i := range b.Rows {
		if err := cw.Write(b.Cells(&b.Rows[i])); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes an indented array of records whose keys follow the column
// order. Absent values are null.
func WriteJSON(w io.Writer, b *board.Board) error {
	bw := bufio.NewWriter(w)
	cols := b.Columns()
	keys := make([][]byte, len(cols))
	for i, c := range cols {
		k, err := json.Marshal(c)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	if _, err := bw.WriteString("["); err != nil {
		return err
	}
	for i := range b.Rows {
		if i > 0 {
			_, _ = bw.WriteString(",")
		}
		_, _ = bw.WriteString("\n  {")
		for j, v := range b.Values(&b.Rows[i]) {
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", i, cols[j], err)
			}
			if j > 0 {
				_, _ = bw.WriteString(",")
			}
			_, _ = bw.WriteString("\n    ")
			_, _ = bw.Write(keys[j])
			_, _ = bw.WriteString(": ")
			_, _ = bw.Write(val)
		}
		_, _ = bw.WriteString("\n  }")
	}
	if len(b.Rows) > 0 {
		_, _ = bw.WriteString("\n")
	}
	_, _ = bw.WriteString("]\n")
	return bw.Flush()
}

// WriteXLSX writes the board to a single-sheet workbook.
func WriteXLSX(path string, b *board.Board) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	header := make([]any, 0, len(b.Columns()))
	for _, c := range b.Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	for i := range b.Rows {
		vals := b.Values(&b.Rows[i])
		for j, v := range vals {
			if o, ok := v.(model.Optional); ok {
				if x, present := o.Get(); present {
					vals[j] = x
				} else {
					vals[j] = nil
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
