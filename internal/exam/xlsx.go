package exam

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Exams"

var xlsxHeader = []interface{}{"Exam", "Subject", "Date", "Topics"}

// ExportXLSX writes records as a single-sheet workbook, one exam per row.
func ExportXLSX(w io.Writer, recs []Record) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("close workbook: %v", err)
		}
	}()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ExamName, r.Subject, r.ExamDate, strings.Join(r.Topics, "; ")}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// ImportXLSX reads the first sheet of a workbook laid out like ExportXLSX.
// Rows without a name or date are skipped. Dates are not validated here.
func ImportXLSX(r io.Reader, ownerID string) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("close workbook: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("excel file does not contain any sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheet, err)
	}

	out := []Record{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		cell := func(n int) string {
			if len(row) > n {
				return strings.TrimSpace(row[n])
			}
			return ""
		}
		name, subject, date := cell(0), cell(1), cell(2)
		if name == "" || date == "" {
			log.Printf("xlsx import: skipping row %d (name=%q date=%q)", i+1, name, date)
			continue
		}
		out = append(out, Record{
			ID:       uuid.NewString(),
			ExamName: name,
			Subject:  subject,
			ExamDate: date,
			Topics:   CleanTopics(strings.Split(cell(3), ";")),
			OwnerID:  ownerID,
		})
	}
	return out, nil
}
