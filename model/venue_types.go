package model

// Venue é a entidade única do sistema: uma casa de show catalogada.
// CreatedAt é em milissegundos de época (compatível com o banco antigo).
type Venue struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	DDD         string  `json:"ddd"`
	SocialMedia string  `json:"socialMedia"`
	DistanceKm  float64 `json:"distanceKm"`
	TravelTime  string  `json:"travelTime"`
	Notes       string  `json:"notes"`
	CreatedAt   int64   `json:"createdAt"`
}

// VenueCandidate é o payload bruto retornado pela extração de IA.
// Nenhum campo é confiável; a validação acontece na admissão do lote.
type VenueCandidate struct {
	Name        string  `json:"name"`
	City        string  `json:"city"`
	DDD         string  `json:"ddd"`
	SocialMedia string  `json:"socialMedia"`
	DistanceKm  float64 `json:"distanceKm"`
	TravelTime  string  `json:"travelTime"`
}

// VenueUpdateInput são os campos mutáveis de um registro existente.
// ID e CreatedAt nunca mudam numa edição.
type VenueUpdateInput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	DDD         string  `json:"ddd"`
	SocialMedia string  `json:"socialMedia"`
	DistanceKm  float64 `json:"distanceKm"`
	TravelTime  string  `json:"travelTime"`
	Notes       string  `json:"notes"`
}

// GroupedVenues agrupa os registros por DDD para a tela principal.
type GroupedVenues map[string][]Venue

// Regiões reconhecidas; qualquer outro DDD cai em RegionOther.
const (
	Region48    = "48"
	Region47    = "47"
	Region49    = "49"
	RegionOther = "Outros"

	// DDDUnknown é o sentinela usado quando a extração não identifica o DDD.
	DDDUnknown = "?"
)
