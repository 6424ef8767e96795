package usecase

import (
	"newsfeed/internal/domain"
	"slices"
	"sort"
)

// Rank упорядочивает пачку по убыванию веса рубрики в профиле предпочтений.
// Пустой профиль - холодный старт: пачка возвращается без изменений.
// Сортировка стабильная: статьи с равным весом сохраняют взаимный порядок
// входа, иначе ранжирование невоспроизводимо для групп равного веса.
// Чистая перестановка - ничего не отбрасывается и не дублируется.
func Rank(batch []domain.Article, profile domain.PreferenceProfile) []domain.Article {
	if profile.TotalClicks() == 0 {
		return batch
	}
	ranked := slices.Clone(batch)
	sort.SliceStable(ranked, func(i, j int) bool {
		return profile.Weight(ranked[i].Category) > profile.Weight(ranked[j].Category)
	})
	return ranked
}
