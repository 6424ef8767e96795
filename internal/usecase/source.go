package usecase

import (
	"context"
	"newsfeed/internal/domain"
)

// HeadlineSource определяет интерфейс загрузки заголовков одной рубрики
// у внешнего провайдера. Возвращает статьи, помеченные запрошенной рубрикой.
type HeadlineSource interface {
	TopHeadlines(ctx context.Context, category domain.Category) ([]domain.Article, error)
}

// PreferenceStore определяет интерфейс долговременного хранилища профиля
// предпочтений. Отсутствующий профиль читается как пустой.
type PreferenceStore interface {
	LoadProfile(ctx context.Context) (domain.PreferenceProfile, error)
	IncrementClicks(ctx context.Context, category domain.Category) error
}
