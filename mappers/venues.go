package mappers

import (
	"sort"
	"strings"

	"ocdb/model"
)

// FilterVenues aplica o filtro de busca da tela principal: substring
// sem diferenciar maiúsculas sobre nome, cidade ou DDD. Termo vazio
// devolve a lista inteira. Não muta a entrada.
func FilterVenues(venues []model.Venue, term string) []model.Venue {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		out := make([]model.Venue, len(venues))
		copy(out, venues)
		return out
	}

	out := make([]model.Venue, 0, len(venues))
	for _, v := range venues {
		if strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.City), q) ||
			strings.Contains(v.DDD, q) {
			out = append(out, v)
		}
	}
	return out
}

// GroupByRegion monta os grupos da tela principal: DDDs 48, 47 e 49 têm
// seção própria; o resto cai em "Outros". Cada grupo sai ordenado por
// distância crescente.
func GroupByRegion(venues []model.Venue) model.GroupedVenues {
	groups := model.GroupedVenues{
		model.Region48:    {},
		model.Region47:    {},
		model.Region49:    {},
		model.RegionOther: {},
	}

	for _, v := range venues {
		switch v.DDD {
		case model.Region48, model.Region47, model.Region49:
			groups[v.DDD] = append(groups[v.DDD], v)
		default:
			groups[model.RegionOther] = append(groups[model.RegionOther], v)
		}
	}

	for key := range groups {
		SortByDistance(groups[key])
	}
	return groups
}

// SortByDistance ordena in place por distância crescente, estável para
// preservar a ordem de inserção em empates.
func SortByDistance(venues []model.Venue) {
	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].DistanceKm < venues[j].DistanceKm
	})
}
