package cleanup

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"ocdb/dedup"
	"ocdb/store"
)

type previewResponse struct {
	Total      int    `json:"total"`
	Duplicates int    `json:"duplicates"`
	Message    string `json:"message"`
}

type applyResponse struct {
	Removed   int    `json:"removed"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

// PreviewCleanupHandler conta quantas repetidas seriam removidas, sem
// tocar no banco. A interface usa esse número no diálogo de confirmação.
func PreviewCleanupHandler(st *store.VenueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := st.Snapshot()

		resp := previewResponse{Total: len(snapshot)}
		switch {
		case len(snapshot) == 0:
			resp.Message = "Seu banco de dados está vazio!"
		default:
			_, removed := dedup.Compact(snapshot)
			resp.Duplicates = removed
			if removed == 0 {
				resp.Message = "Nenhuma casa repetida encontrada. Seu banco está organizado!"
			} else {
				resp.Message = fmt.Sprintf("Encontramos %d casa(s) com nomes repetidos na mesma cidade. Deseja unificar agora?", removed)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// ApplyCleanupHandler executa a unificação confirmada. Banco vazio ou sem
// repetidas não é alterado.
func ApplyCleanupHandler(st *store.VenueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		// Snapshot, deduplicação e gravação acontecem dentro do store,
		// sob o escritor único: uma ingestão concorrente nunca se
		// intercala entre a leitura e a troca da lista.
		removed, remaining, err := st.Compact()
		if err != nil {
			log.Printf("Failed to apply cleanup: %v", err)
			http.Error(w, "Falha ao salvar a limpeza no banco", http.StatusInternalServerError)
			return
		}

		resp := applyResponse{Removed: removed, Remaining: remaining}
		switch {
		case removed == 0 && remaining == 0:
			resp.Message = "Seu banco de dados está vazio!"
		case removed == 0:
			resp.Message = "Nenhuma casa repetida encontrada. Seu banco está organizado!"
		default:
			log.Printf("Cleanup applied: %d duplicate(s) removed, %d remaining", removed, remaining)
			resp.Message = fmt.Sprintf("Sucesso! %d registros duplicados foram removidos.", removed)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
