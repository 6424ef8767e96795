package storage

import (
	"context"
	"newsfeed/internal/domain"
)

// Storage определяет общий интерфейс хранилища профиля предпочтений.
// Объединяет чтение профиля, инкремент счетчика рубрики и закрытие соединения.
type Storage interface {
	LoadProfile(ctx context.Context) (domain.PreferenceProfile, error)
	IncrementClicks(ctx context.Context, category domain.Category) error
	Close() error
}
