package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"

	"ocdb/database"
	"ocdb/dedup"
	"ocdb/model"
)

// ErrMissingFields indica uma edição sem nome ou cidade preenchidos.
var ErrMissingFields = errors.New("nome e cidade são obrigatórios")

// VenueStore é a coleção ordenada de casas mantida em memória.
// Toda mutação passa por um único escritor (mutex) e é persistida por
// inteiro no banco antes de valer: nenhuma leitura-modificação-escrita
// se intercala com outra.
type VenueStore struct {
	mu     sync.Mutex
	db     *sqlx.DB
	venues []model.Venue
}

// Load lê o banco uma única vez na subida e constrói o store.
func Load(db *sqlx.DB) (*VenueStore, error) {
	venues, err := database.LoadVenues(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue store: %w", err)
	}
	return &VenueStore{db: db, venues: venues}, nil
}

// Snapshot devolve uma cópia da lista atual, na ordem armazenada.
func (s *VenueStore) Snapshot() []model.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Venue, len(s.venues))
	copy(out, s.venues)
	return out
}

// Len devolve o total de registros.
func (s *VenueStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.venues)
}

// Append anexa registros já admitidos, preservando a ordem relativa.
func (s *VenueStore) Append(records []model.Venue) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Venue, 0, len(s.venues)+len(records))
	next = append(next, s.venues...)
	next = append(next, records...)

	if err := database.SaveVenues(s.db, next); err != nil {
		return err
	}
	s.venues = next
	return nil
}

// ReplaceAll troca a lista inteira de uma vez.
func (s *VenueStore) ReplaceAll(records []model.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Venue, len(records))
	copy(next, records)

	if err := database.SaveVenues(s.db, next); err != nil {
		return err
	}
	s.venues = next
	return nil
}

// Remove apaga o registro com o ID dado. Devolve false se não existir.
func (s *VenueStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Venue, 0, len(s.venues))
	found := false
	for _, v := range s.venues {
		if v.ID == id {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		return false, nil
	}

	if err := database.SaveVenues(s.db, next); err != nil {
		return false, err
	}
	s.venues = next
	return true, nil
}

// Admit roda a deduplicação de um lote extraído contra o estado atual e
// anexa os admitidos, tudo sob o mesmo bloqueio: nenhuma outra mutação
// se intercala entre a checagem de duplicatas e a gravação.
func (s *VenueStore) Admit(candidates []model.VenueCandidate) (dedup.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := dedup.AdmitBatch(s.venues, candidates)
	if len(result.Admitted) == 0 {
		return result, nil
	}

	next := make([]model.Venue, 0, len(s.venues)+len(result.Admitted))
	next = append(next, s.venues...)
	next = append(next, result.Admitted...)

	if err := database.SaveVenues(s.db, next); err != nil {
		return dedup.BatchResult{}, err
	}
	s.venues = next
	return result, nil
}

// Compact colapsa o banco para um registro por chave de identidade,
// também sob o bloqueio do escritor único. Sem repetidas, nada é gravado.
func (s *VenueStore) Compact() (removed int, remaining int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, count := dedup.Compact(s.venues)
	if count == 0 {
		return 0, len(s.venues), nil
	}

	if err := database.SaveVenues(s.db, result); err != nil {
		return 0, len(s.venues), err
	}
	s.venues = result
	return count, len(result), nil
}

// Update substitui os campos mutáveis do registro com o ID dado,
// mantendo ID e CreatedAt. A unicidade NÃO é reavaliada aqui: uma edição
// pode criar uma duplicata, que só é recolhida na próxima limpeza.
func (s *VenueStore) Update(input model.VenueUpdateInput) (bool, error) {
	name := strings.TrimSpace(input.Name)
	city := strings.TrimSpace(input.City)
	if name == "" || city == "" {
		return false, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Venue, len(s.venues))
	copy(next, s.venues)

	found := false
	for i, v := range next {
		if v.ID != input.ID {
			continue
		}
		next[i] = model.Venue{
			ID:          v.ID,
			Name:        name,
			City:        city,
			DDD:         input.DDD,
			SocialMedia: input.SocialMedia,
			DistanceKm:  max(input.DistanceKm, 0),
			TravelTime:  input.TravelTime,
			Notes:       input.Notes,
			CreatedAt:   v.CreatedAt,
		}
		found = true
		break
	}
	if !found {
		return false, nil
	}

	if err := database.SaveVenues(s.db, next); err != nil {
		return false, err
	}
	s.venues = next
	return true, nil
}
