// internal/export/writers.go
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/extractor"
)

func writeJSON(w io.Writer, content *extractor.ExtractedContent) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(content); err != nil {
		return fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, content *extractor.ExtractedContent) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(inventoryHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range inventoryRows(content) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeXLSX(w io.Writer, content *extractor.ExtractedContent) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Media"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	writeRow := func(rowNum int, values []string) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, inventoryHeader); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}
	for i, row := range inventoryRows(content) {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("failed to write XLSX row: %w", err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return nil
}
