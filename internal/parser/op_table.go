package parser

import (
	"numerus/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все операторы левоассоциативны.
const (
	precNone           = 0
	precAdditive       = 1 // ADDIUS SUBTRAHE
	precMultiplicative = 2 // MULTIPLICA DIVIDE
)

func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.KwAddius, token.KwSubtrahe:
		return precAdditive
	case token.KwMultiplica, token.KwDivide:
		return precMultiplicative
	default:
		return precNone
	}
}
