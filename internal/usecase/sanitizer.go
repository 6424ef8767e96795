package usecase

import (
	"math/rand"
	"newsfeed/internal/domain"
)

// Sanitizer чистит сырую пачку перед ранжированием: отбрасывает статьи
// без заголовка или превью-картинки, а на пути "all" дополнительно
// перемешивает пачку и обрезает её до предельного размера.
type Sanitizer struct {
	maxBatch int
}

// NewSanitizer создает санитайзер с предельным размером пачки.
func NewSanitizer(maxBatch int) *Sanitizer {
	return &Sanitizer{maxBatch: maxBatch}
}

// Sanitize возвращает очищенную пачку. При diversify применяется
// равномерное перемешивание (снимает порядковый перекос провайдера)
// и обрезка до maxBatch; одиночные рубрики проходят только фильтр.
func (s *Sanitizer) Sanitize(batch []domain.Article, diversify bool) []domain.Article {
	cleaned := make([]domain.Article, 0, len(batch))
	for _, a := range batch {
		if a.Displayable() {
			cleaned = append(cleaned, a)
		}
	}
	if !diversify {
		return cleaned
	}
	rand.Shuffle(len(cleaned), func(i, j int) {
		cleaned[i], cleaned[j] = cleaned[j], cleaned[i]
	})
	if len(cleaned) > s.maxBatch {
		cleaned = cleaned[:s.maxBatch]
	}
	return cleaned
}
