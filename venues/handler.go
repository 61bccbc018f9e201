package venues

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"ocdb/mappers"
	"ocdb/model"
	"ocdb/store"
)

type listResponse struct {
	Groups model.GroupedVenues `json:"groups"`
	Total  int                 `json:"total"`
}

// ListVenuesHandler devolve as casas agrupadas por região, com o filtro
// de busca opcional em ?q=. Leitura pura: nada aqui muta o banco.
func ListVenuesHandler(st *store.VenueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := st.Snapshot()
		filtered := mappers.FilterVenues(snapshot, r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(listResponse{
			Groups: mappers.GroupByRegion(filtered),
			Total:  len(snapshot),
		})
	}
}

// UpdateVenueHandler aplica uma edição de registro. ID e CreatedAt são
// preservados; a unicidade não é reavaliada numa edição, a limpeza de
// repetidas corrige depois.
func UpdateVenueHandler(st *store.VenueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut && r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		var input model.VenueUpdateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Corpo da requisição inválido", http.StatusBadRequest)
			return
		}
		if input.ID == "" {
			http.Error(w, "ID do registro é obrigatório", http.StatusBadRequest)
			return
		}

		found, err := st.Update(input)
		if errors.Is(err, store.ErrMissingFields) {
			http.Error(w, "Nome e cidade são obrigatórios", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Printf("Failed to update venue %s: %v", input.ID, err)
			http.Error(w, "Falha ao salvar o registro", http.StatusInternalServerError)
			return
		}
		if !found {
			http.NotFound(w, r)
			return
		}

		log.Printf("Venue %s updated", input.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}

// DeleteVenueHandler remove o registro do ID na URL. A confirmação
// ("Tem certeza...?") acontece na interface, antes desta chamada.
func DeleteVenueHandler(st *store.VenueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/api/venues/delete/")
		if id == "" {
			http.Error(w, "ID do registro é obrigatório", http.StatusBadRequest)
			return
		}

		found, err := st.Remove(id)
		if err != nil {
			log.Printf("Failed to delete venue %s: %v", id, err)
			http.Error(w, "Falha ao remover o registro", http.StatusInternalServerError)
			return
		}
		if !found {
			http.NotFound(w, r)
			return
		}

		log.Printf("Venue %s deleted", id)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}
