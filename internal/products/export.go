package products

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"

	"github.com/Simplici0/precificalc/internal/display"
	"github.com/Simplici0/precificalc/internal/pricing"
)

// ExportHeaders are the column titles shared by the CSV and XLSX exports.
var ExportHeaders = []string{
	"Nome", "Custo Direto", "Custo Indireto", "Mão de Obra", "Embalagem",
	"Frete", "Comissão", "Margem", "Preço Final", "Data",
}

const xlsxSheet = "Sheet1"

type csvRow struct {
	Name           string `csv:"Nome"`
	DirectCost     string `csv:"Custo Direto"`
	IndirectCost   string `csv:"Custo Indireto"`
	LaborCost      string `csv:"Mão de Obra"`
	PackagingCost  string `csv:"Embalagem"`
	FreightCost    string `csv:"Frete"`
	CommissionCost string `csv:"Comissão"`
	DesiredMargin  string `csv:"Margem"`
	FinalPrice     string `csv:"Preço Final"`
	CreatedAt      string `csv:"Data"`
}

// WriteJSON writes list as an indented JSON array.
func WriteJSON(w io.Writer, list []Product) error {
	if list == nil {
		list = []Product{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode products json: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write products json: %w", err)
	}
	return nil
}

// WriteCSV writes one header row and one row per product. Numbers use their
// shortest text form; a non-computable final price is left empty.
func WriteCSV(w io.Writer, list []Product) error {
	rows := make([]*csvRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, &csvRow{
			Name:           p.Name,
			DirectCost:     formatNumber(p.DirectCost),
			IndirectCost:   formatNumber(p.IndirectCost),
			LaborCost:      formatNumber(p.LaborCost),
			PackagingCost:  formatNumber(p.PackagingCost),
			FreightCost:    formatNumber(p.FreightCost),
			CommissionCost: formatNumber(p.CommissionCost),
			DesiredMargin:  formatNumber(p.DesiredMargin),
			FinalPrice:     formatNumber(p.FinalPrice),
			CreatedAt:      display.Date(p.CreatedAt),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("encode products csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the same table as WriteCSV into a single-sheet workbook.
func WriteXLSX(w io.Writer, list []Product) error {
	f := excelize.NewFile()
	for col, title := range ExportHeaders {
		f.SetCellValue(xlsxSheet, cellName(col, 1), title)
	}

	for i, p := range list {
		row := i + 2
		values := []interface{}{
			p.Name,
			p.DirectCost,
			p.IndirectCost,
			p.LaborCost,
			p.PackagingCost,
			p.FreightCost,
			p.CommissionCost,
			p.DesiredMargin,
			xlsxNumber(p.FinalPrice),
			display.Date(p.CreatedAt),
		}
		for col, v := range values {
			f.SetCellValue(xlsxSheet, cellName(col, row), v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write products xlsx: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	if !pricing.IsFinite(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func xlsxNumber(v float64) interface{} {
	if !pricing.IsFinite(v) {
		return ""
	}
	return v
}

// cellName supports the export's ten columns (A..J).
func cellName(col, row int) string {
	return string(rune('A'+col)) + strconv.Itoa(row)
}
