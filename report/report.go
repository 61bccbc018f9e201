package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"ocdb/mappers"
	"ocdb/model"
)

var columns = []struct {
	Title string
	Width float64
}{
	{"CASA DE SHOW", 50},
	{"CIDADE", 40},
	{"DDD", 15},
	{"DISTÂNCIA", 25},
	{"VIAGEM", 25},
	{"INSTAGRAM", 35},
}

// Rows projeta o banco nas linhas do relatório, ordenadas por distância
// crescente. Campos opcionais vazios viram "-".
func Rows(venues []model.Venue) [][]string {
	sorted := make([]model.Venue, len(venues))
	copy(sorted, venues)
	mappers.SortByDistance(sorted)

	rows := make([][]string, 0, len(sorted))
	for _, v := range sorted {
		rows = append(rows, []string{
			strings.ToUpper(v.Name),
			strings.ToUpper(v.City),
			v.DDD,
			fmt.Sprintf("%.1f KM", v.DistanceKm),
			orDash(v.TravelTime),
			orDash(v.SocialMedia),
		})
	}
	return rows
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// BuildPDF gera o relatório oficial da agenda em PDF.
func BuildPDF(venues []model.Venue, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Faixa de cabeçalho no visual do app (fundo escuro, título ciano).
	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(0, 0, 210, 25, "F")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(6, 182, 212)
	pdf.Text(14, 16, "OCDB - O CAMINHO DO BAILE")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(148, 163, 184)
	pdf.Text(14, 21, tr(fmt.Sprintf("Relatório Oficial Studio Voz - %s", generatedAt.Format("02/01/2006"))))

	pdf.SetY(30)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(6, 182, 212)
	pdf.SetDrawColor(203, 213, 225)
	for _, col := range columns {
		pdf.CellFormat(col.Width, 7, tr(col.Title), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(30, 41, 59)
	for _, row := range Rows(venues) {
		for i, cell := range row {
			pdf.CellFormat(columns[i].Width, 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}
