package report

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"ocdb/store"
)

// ExportPDFHandler baixa o relatório da agenda completa.
func ExportPDFHandler(st *store.VenueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		pdfBytes, err := BuildPDF(st.Snapshot(), now)
		if err != nil {
			log.Printf("Failed to build PDF report: %v", err)
			http.Error(w, "Falha ao gerar o relatório em PDF", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("ocdb-agenda-%d.pdf", now.UnixMilli())
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if _, err := w.Write(pdfBytes); err != nil {
			log.Printf("Failed to send PDF report: %v", err)
		}
	}
}
