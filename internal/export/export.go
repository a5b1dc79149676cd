// internal/export/export.go
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/extractor"
)

// Format identifies a media inventory export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// ParseFormat normalizes a requested format, defaulting to JSON.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

// Write renders the media inventory of content in the requested format.
func Write(w io.Writer, format Format, content *extractor.ExtractedContent) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, content)
	case FormatXLSX:
		return writeXLSX(w, content)
	default:
		return writeJSON(w, content)
	}
}

// inventoryHeader is the shared column layout of the tabular formats.
var inventoryHeader = []string{"kind", "url", "label", "detail", "filename"}

// inventoryRows flattens the three media sequences into tabular rows, one
// per item, in result order.
func inventoryRows(content *extractor.ExtractedContent) [][]string {
	rows := make([][]string, 0, content.MediaCount())
	for _, img := range content.Images {
		rows = append(rows, []string{"image", img.URL, img.Alt, "", img.Filename})
	}
	for _, vid := range content.Videos {
		rows = append(rows, []string{"video", vid.URL, vid.Title, vid.Duration, vid.Filename})
	}
	for _, doc := range content.Documents {
		rows = append(rows, []string{"document", doc.URL, doc.Title, doc.Type, doc.Filename})
	}
	return rows
}
