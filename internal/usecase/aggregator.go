package usecase

import (
	"context"
	"log/slog"
	"newsfeed/internal/domain"
	"sync"
)

// Aggregator собирает сырые пачки статей у провайдера заголовков.
// Для селектора "all" опрашивает все рубрики параллельно; отказ любой
// рубрики деградирует её вклад до пустого списка и никогда не поднимается
// наверх. Кэширования на этом уровне нет - оно живет уровнем выше.
type Aggregator struct {
	source HeadlineSource
	log    *slog.Logger
}

// NewAggregator создает новый агрегатор поверх источника заголовков.
func NewAggregator(source HeadlineSource, log *slog.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		log:    log,
	}
}

// AssembleRaw возвращает сырую пачку статей для селектора.
// При селекторе "all" результаты конкатенируются строго в порядке
// перечисления рубрик, независимо от порядка завершения запросов.
// Каждая параллельная ветка пишет только в свой слот результата.
func (a *Aggregator) AssembleRaw(ctx context.Context, selector domain.Category) []domain.Article {
	if selector != domain.CategoryAll {
		return a.fetchOne(ctx, selector)
	}
	cats := domain.Categories()
	results := make([][]domain.Article, len(cats))
	var wg sync.WaitGroup
	for i, c := range cats {
		wg.Add(1)
		go func(i int, c domain.Category) {
			defer wg.Done()
			results[i] = a.fetchOne(ctx, c)
		}(i, c)
	}
	wg.Wait()
	batch := make([]domain.Article, 0)
	for _, part := range results {
		batch = append(batch, part...)
	}
	return batch
}

// fetchOne загружает одну рубрику, сводя любую ошибку к пустому вкладу.
func (a *Aggregator) fetchOne(ctx context.Context, category domain.Category) []domain.Article {
	articles, err := a.source.TopHeadlines(ctx, category)
	if err != nil {
		a.log.Error("Headline fetch failed",
			slog.String("component", "aggregator"),
			slog.String("category", string(category)),
			slog.Any("error", err),
		)
		return []domain.Article{}
	}
	return articles
}
