package trivia

import "strings"

// Провайдер отдает текст с закодированными HTML-сущностями.
// Таблица фиксированная, замена - чистый проход, порядок пар не важен.
var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&#039;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// decodeEntities декодирует HTML-сущности в тексте провайдера
func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// decodeAll декодирует каждый элемент слайса, возвращая новый слайс
func decodeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = decodeEntities(s)
	}
	return out
}
