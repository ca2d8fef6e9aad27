package pipeline

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/eol-cli/internal/model"
)

// exportColumns defines the ordered output columns.
var exportColumns = []string{"vendor", "model", "eol_date", "eosl_date"}

// xlsxSheetName is the sheet records land on in workbook exports.
const xlsxSheetName = "eol_eosl"

// ExportCSV writes records as a CSV file with a header row. Nil dates
// render as empty cells.
func ExportCSV(records []model.Record, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(exportColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, r := range records {
		if err := w.Write(buildRow(r)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	return nil
}

// ExportXLSX writes records as an xlsx workbook with a single sheet.
func ExportXLSX(records []model.Record, outputPath string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(xlsxSheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range exportColumns {
		header.AddCell().SetString(col)
	}

	for _, r := range records {
		row := sheet.AddRow()
		for _, cell := range buildRow(r) {
			row.AddCell().SetString(cell)
		}
	}

	if err := f.Save(outputPath); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

// buildRow maps a Record to its output cells.
func buildRow(r model.Record) []string {
	return []string{
		r.Vendor,
		r.Model,
		stringOrEmpty(r.EOLDate),
		stringOrEmpty(r.EOSLDate),
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
