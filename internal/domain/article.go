package domain

import (
	"fmt"
	"time"
)

// Category представляет тематическую рубрику новостей.
type Category string

// Фиксированный закрытый набор рубрик провайдера заголовков.
// CategoryAll - не настоящая рубрика, а синтетический селектор "все рубрики",
// используется только в запросах ленты.
const (
	CategoryAll           Category = "all"
	CategoryGeneral       Category = "general"
	CategoryBusiness      Category = "business"
	CategoryTechnology    Category = "technology"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
)

// Categories возвращает рубрики в фиксированном порядке перечисления.
// Этот порядок определяет порядок конкатенации результатов агрегатора.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryBusiness,
		CategoryTechnology,
		CategorySports,
		CategoryEntertainment,
		CategoryHealth,
		CategoryScience,
	}
}

// ParseCategory проверяет строковое значение селектора из запроса.
// Принимает любую рубрику из закрытого набора, а также селектор "all".
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c == CategoryAll {
		return c, nil
	}
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Article представляет отдельную статью, неизменяемую после получения.
// URL служит фактическим первичным ключом и целью перехода.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url"`
	Category    Category  `json:"category"`
	Content     string    `json:"content,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Displayable сообщает, пригодна ли статья к показу в ленте.
// Статьи без заголовка или превью-картинки отбрасываются санитайзером.
func (a Article) Displayable() bool {
	return a.Title != "" && a.ImageURL != ""
}

// PreferenceProfile - счетчики кликов пользователя по рубрикам.
// Создается пустым при первом использовании, увеличивается только
// обратной связью по выбору статьи, никогда не затухает.
type PreferenceProfile map[Category]int

// TotalClicks возвращает суммарное число зафиксированных кликов.
func (p PreferenceProfile) TotalClicks() int {
	total := 0
	for _, clicks := range p {
		total += clicks
	}
	return total
}

// Weight возвращает долю кликов рубрики от общего числа кликов.
// Для пустого профиля и неизвестных рубрик возвращает 0.
func (p PreferenceProfile) Weight(c Category) float64 {
	total := p.TotalClicks()
	if total == 0 {
		return 0
	}
	return float64(p[c]) / float64(total)
}
