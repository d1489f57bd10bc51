// Package textsearch monta filtros SQL de busca textual insensíveis a
// maiúsculas e a acentos, para os títulos em português do painel.
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize remove acentos e baixa a caixa, espelhando o unaccent do Postgres.
func Normalize(s string) string {
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}
	return strings.ToLower(s)
}

// Mapa de transliteração aplicado no lado da coluna, espelho do Normalize
// aplicado ao termo. Cobre os acentos do português.
const (
	accentedChars = "áàâãäéèêëíìîïóòôõöúùûüçÁÀÂÃÄÉÈÊËÍÌÎÏÓÒÔÕÖÚÙÛÜÇ"
	plainChars    = "aaaaaeeeeiiiiooooouuuucAAAAAEEEEIIIIOOOOOUUUUC"
)

// SQLFilter devolve um fragmento ILIKE insensível a acentos nos dois lados:
// o termo passa pelo Normalize e a coluna por translate(), de modo que tanto
// "Relatório" quanto "relatorio" armazenados casem com qualquer grafia buscada.
func SQLFilter(column, term string) (string, []interface{}) {
	fragment := "translate(" + column + ", '" + accentedChars + "', '" + plainChars + "') ILIKE ?"
	return fragment, []interface{}{"%" + Normalize(term) + "%"}
}
