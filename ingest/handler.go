package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"ocdb/model"
	"ocdb/store"
)

// VenueExtractor é o colaborador externo que transforma um print numa
// lista de candidatos. Em produção é o extraction.Extractor.
type VenueExtractor interface {
	ExtractVenues(ctx context.Context, imageData []byte, mediaType string) ([]model.VenueCandidate, error)
}

type uploadResponse struct {
	Added      int    `json:"added"`
	Duplicates int    `json:"duplicates"`
	Total      int    `json:"total"`
	Message    string `json:"message"`
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// UploadVenuesHandler recebe um print de agenda, roda a extração de IA e
// admite o lote contra o banco atual. Só uma extração por vez: enquanto
// uma estiver em andamento, novas tentativas recebem 409.
func UploadVenuesHandler(st *store.VenueStore, ex VenueExtractor) http.HandlerFunc {
	var busy atomic.Bool

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		if !busy.CompareAndSwap(false, true) {
			respondJSONError(w, "Já existe um print em processamento. Aguarde terminar.", http.StatusConflict)
			return
		}
		defer busy.Store(false)

		log.Println("Received venue screenshot upload...")

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondJSONError(w, "Falha ao receber o arquivo: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("image")
		if err != nil {
			respondJSONError(w, "Envie o print no campo 'image'.", http.StatusBadRequest)
			return
		}
		defer file.Close()

		imageData, err := io.ReadAll(file)
		if err != nil {
			respondJSONError(w, "Falha ao ler o arquivo enviado.", http.StatusBadRequest)
			return
		}

		mediaType := detectMediaType(header.Filename, header.Header.Get("Content-Type"))
		if mediaType == "" {
			respondJSONError(w, "Formato de imagem não suportado. Use PNG, JPEG, GIF ou WebP.", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		candidates, err := ex.ExtractVenues(ctx, imageData, mediaType)
		if err != nil {
			log.Printf("Extraction failed for %s: %v", header.Filename, err)
			respondJSONError(w, "Erro ao analisar imagem. Tente um print mais nítido.", http.StatusBadGateway)
			return
		}
		log.Printf("Extraction returned %d candidate(s) from %s", len(candidates), header.Filename)

		result, err := st.Admit(candidates)
		if err != nil {
			log.Printf("Failed to admit extracted venues: %v", err)
			respondJSONError(w, "Falha ao salvar as novas casas no banco.", http.StatusInternalServerError)
			return
		}

		resp := uploadResponse{
			Added:      len(result.Admitted),
			Duplicates: result.Rejected,
			Total:      st.Len(),
			Message:    buildSummary(len(result.Admitted), result.Rejected),
		}
		log.Printf("Ingest complete: %d added, %d duplicates ignored", resp.Added, resp.Duplicates)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func buildSummary(added, duplicates int) string {
	switch {
	case added > 0 && duplicates > 0:
		return fmt.Sprintf("%d novas casas adicionadas. %d casas repetidas foram ignoradas automaticamente.", added, duplicates)
	case added > 0:
		return fmt.Sprintf("%d novas casas adicionadas com sucesso!", added)
	case duplicates > 0:
		return "Aviso: Todas as casas deste print já constam no seu banco de dados. Nenhuma duplicata foi criada."
	default:
		return "Nenhuma casa de show foi identificada neste print."
	}
}

var supportedMediaTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

func detectMediaType(filename, contentType string) string {
	if supportedMediaTypes[contentType] {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return ""
}
