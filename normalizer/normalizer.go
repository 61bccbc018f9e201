package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decompõe (NFD) e remove as marcas diacríticas combinantes.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converte um texto livre na sua forma canônica de comparação:
// minúsculas, sem acentos e somente [a-z0-9]. Espaços e pontuação somem,
// então "Bar do Zé!" e "bardoze" normalizam iguais.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	folded, _, err := transform.String(foldAccents, s)
	if err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IdentityKey é a chave de unicidade de uma casa: nome + cidade
// normalizados. O "|" nunca sobrevive à normalização, então o separador
// não colide com o conteúdo.
func IdentityKey(name, city string) string {
	return Normalize(name) + "|" + Normalize(city)
}
