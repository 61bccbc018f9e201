package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ocdb/model"
)

// Extractor encapsula a chamada multimodal que transforma um print de
// agenda numa lista de casas candidatas. A saída é sempre tratada como
// não confiável: a validação fica na admissão do lote.
type Extractor struct {
	client anthropic.Client
	model  string
	origin string
}

// NewExtractor cria o extrator. A chave vem de ANTHROPIC_API_KEY.
func NewExtractor(apiKey, modelName, originAddress string) *Extractor {
	return &Extractor{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  modelName,
		origin: originAddress,
	}
}

func (e *Extractor) buildPrompt() string {
	return fmt.Sprintf(`Aja como um assistente de produção de bandas. Analise este print de uma agenda de shows.
Extraia todas as casas de show listadas.
Para cada casa, identifique: Nome, Cidade e o DDD da região (ex: 48, 47, 49).
Tente encontrar ou sugerir o link da rede social (Instagram) mais provável da casa.

CALCULE A DISTÂNCIA E O TEMPO DE VIAGEM:
Partida: %s.
Calcule a distância precisa em KM e o tempo estimado de viagem de carro.

Responda SOMENTE com um array JSON, sem cercas de markdown, no formato:
[{"name": "...", "city": "...", "ddd": "48", "socialMedia": "...", "distanceKm": 12.5, "travelTime": "1h 20min"}]`, e.origin)
}

// ExtractVenues envia a imagem e devolve os candidatos extraídos.
// Erro de transporte/API aborta a ingestão; resposta não parseável vira
// lista vazia, nunca erro.
func (e *Extractor) ExtractVenues(ctx context.Context, imageData []byte, mediaType string) ([]model.VenueCandidate, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(e.buildPrompt()),
				anthropic.NewImageBlockBase64(mediaType, encoded),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	return ParseCandidates(responseText), nil
}

// ParseCandidates extrai o array JSON do texto de resposta do modelo.
// Tolera cercas de markdown e texto em volta do array.
func ParseCandidates(responseText string) []model.VenueCandidate {
	text := stripFences(responseText)

	// Se ainda houver texto em volta, recorta do primeiro "[" ao último "]".
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	var candidates []model.VenueCandidate
	if err := json.Unmarshal([]byte(text), &candidates); err != nil {
		log.Printf("WARN: unparsable extraction response, treating as empty batch: %v", err)
		return []model.VenueCandidate{}
	}
	if candidates == nil {
		candidates = []model.VenueCandidate{}
	}
	return candidates
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
