package dedup

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ocdb/model"
	"ocdb/normalizer"
)

// BatchResult é o resultado da admissão de um lote extraído.
// Rejected conta apenas duplicatas; candidatos malformados são descartados
// em silêncio e não entram na conta.
type BatchResult struct {
	Admitted []model.Venue `json:"admitted"`
	Rejected int           `json:"rejected"`
}

// AdmitBatch filtra os candidatos de uma extração contra o banco atual e
// contra o próprio lote, em ordem de entrada. Função pura: quem chama é
// responsável por anexar Admitted ao banco.
func AdmitBatch(existing []model.Venue, candidates []model.VenueCandidate) BatchResult {
	seen := make(map[string]bool, len(existing)+len(candidates))
	for _, v := range existing {
		seen[normalizer.IdentityKey(v.Name, v.City)] = true
	}

	result := BatchResult{Admitted: []model.Venue{}}
	now := time.Now().UnixMilli()

	for _, c := range candidates {
		name := strings.TrimSpace(c.Name)
		city := strings.TrimSpace(c.City)
		if name == "" || city == "" {
			// malformado, não é duplicata
			continue
		}

		key := normalizer.IdentityKey(name, city)
		if seen[key] {
			result.Rejected++
			continue
		}
		seen[key] = true

		result.Admitted = append(result.Admitted, model.Venue{
			ID:          uuid.NewString(),
			Name:        name,
			City:        city,
			DDD:         defaultDDD(c.DDD),
			SocialMedia: c.SocialMedia,
			DistanceKm:  max(c.DistanceKm, 0),
			TravelTime:  c.TravelTime,
			Notes:       "",
			CreatedAt:   now,
		})
	}

	return result
}

func defaultDDD(ddd string) string {
	ddd = strings.TrimSpace(ddd)
	if ddd == "" {
		return model.DDDUnknown
	}
	return ddd
}

// Compact colapsa o banco inteiro para um registro por chave de
// identidade, mantendo a primeira ocorrência na ordem armazenada.
// Idempotente; a confirmação do usuário fica a cargo de quem chama.
func Compact(venues []model.Venue) (result []model.Venue, removed int) {
	seen := make(map[string]bool, len(venues))
	result = make([]model.Venue, 0, len(venues))

	for _, v := range venues {
		key := normalizer.IdentityKey(v.Name, v.City)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, v)
	}

	return result, len(venues) - len(result)
}
