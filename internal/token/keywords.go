package token

var keywords = map[string]Kind{
	"DECLARA":    KwDeclara,
	"EST":        KwEst,
	"SCRIBE":     KwScribe,
	"AVTEM":      KwAvtem,
	"ADDIUS":     KwAddius,
	"SUBTRAHE":   KwSubtrahe,
	"MULTIPLICA": KwMultiplica,
	"DIVIDE":     KwDivide,
	"ROMANIZA":   KwRomaniza,
	"ARABIZA":    KwArabiza,
}

var keywordText = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		out[kind] = text
	}
	return out
}()

// CommentPrefix opens a line comment.
const CommentPrefix = "NOTA:"

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: распознаются только версии в верхнем регистре.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns the keyword lexemes in declaration order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := KwDeclara; k <= KwArabiza; k++ {
		out = append(out, keywordText[k])
	}
	return out
}
