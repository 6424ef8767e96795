package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"newsfeed/internal/domain"
	"slices"
	"sync"
	"time"
)

// cacheEntry - единственная логическая запись кэша ленты на сессию.
// Перезаписывается при каждой успешной сборке.
type cacheEntry struct {
	batch     []domain.Article
	fetchedAt time.Time
	selector  domain.Category
}

// FeedService реализует выдачу персонализированной ленты.
// Координирует конвейер сборки (агрегация, санация, ранжирование,
// чередование), держит кэш с окном свежести и снимок последней пачки
// для поиска статьи по URL, фиксирует обратную связь по выбору статей.
type FeedService struct {
	aggregator *Aggregator
	sanitizer  *Sanitizer
	prefs      PreferenceStore
	ttl        time.Duration
	log        *slog.Logger
	now        func() time.Time

	mu         sync.Mutex
	generation uint64
	entry      *cacheEntry
	snapshot   map[string]domain.Article
}

// NewFeedService создает новый сервис ленты.
// Принимает зависимости конвейера, хранилище предпочтений, окно свежести
// кэша и логгер. Часы подменяемы через WithClock для детерминированных тестов.
func NewFeedService(
	aggregator *Aggregator,
	sanitizer *Sanitizer,
	prefs PreferenceStore,
	ttl time.Duration,
	log *slog.Logger,
) *FeedService {
	return &FeedService{
		aggregator: aggregator,
		sanitizer:  sanitizer,
		prefs:      prefs,
		ttl:        ttl,
		log:        log,
		now:        time.Now,
		snapshot:   make(map[string]domain.Article),
	}
}

// WithClock подменяет источник времени, используемый проверкой свежести.
func (s *FeedService) WithClock(now func() time.Time) *FeedService {
	s.now = now
	return s
}

// GetFeed - единственная точка входа выдачи ленты.
// Свежий кэш (тот же селектор, непустая пачка, возраст меньше окна
// свежести) отдается без похода к провайдеру. Смена селектора, истекшее
// окно или forceRefresh запускают полную пересборку. Ошибок наружу нет:
// худший исход - пустая пачка.
func (s *FeedService) GetFeed(ctx context.Context, selector domain.Category, forceRefresh bool) []domain.Article {
	s.mu.Lock()
	if !forceRefresh && s.freshLocked(selector) {
		batch := slices.Clone(s.entry.batch)
		s.mu.Unlock()
		s.log.Debug("Serving cached feed",
			slog.String("component", "feed"),
			slog.String("selector", string(selector)),
			slog.Int("count", len(batch)),
		)
		return batch
	}
	if s.entry != nil && s.entry.selector != selector {
		// Смена селектора: старая пачка не годится даже как заглушка,
		// до прихода новой лента считается пустой.
		s.entry = nil
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	batch := s.assemble(ctx, selector)

	s.mu.Lock()
	if gen != s.generation {
		// Пока шла сборка, пришел более свежий запрос. Устаревший результат
		// не имеет права перетирать кэш, но своему вызывающему он отдается.
		s.mu.Unlock()
		s.log.Warn("Discarding superseded feed assembly",
			slog.String("component", "feed"),
			slog.String("selector", string(selector)),
		)
		return batch
	}
	s.entry = &cacheEntry{
		batch:     batch,
		fetchedAt: s.now(),
		selector:  selector,
	}
	snapshot := make(map[string]domain.Article, len(batch))
	for _, a := range batch {
		snapshot[a.URL] = a
	}
	s.snapshot = snapshot
	s.mu.Unlock()
	// Вызывающий получает собственную копию: кэшированная пачка
	// не должна зависеть от мутаций снаружи.
	return slices.Clone(batch)
}

// freshLocked проверяет состояние Fresh для селектора. Вызывается под мьютексом.
func (s *FeedService) freshLocked(selector domain.Category) bool {
	e := s.entry
	return e != nil &&
		e.selector == selector &&
		len(e.batch) > 0 &&
		s.now().Sub(e.fetchedAt) < s.ttl
}

// assemble прогоняет полный конвейер сборки для селектора:
// агрегация -> санация -> ранжирование -> чередование либо фильтр рубрики.
// Недоступный профиль предпочтений деградирует до пустого (холодный старт).
func (s *FeedService) assemble(ctx context.Context, selector domain.Category) []domain.Article {
	start := time.Now()
	diversify := selector == domain.CategoryAll

	raw := s.aggregator.AssembleRaw(ctx, selector)
	cleaned := s.sanitizer.Sanitize(raw, diversify)

	profile, err := s.prefs.LoadProfile(ctx)
	if err != nil {
		s.log.Error("Preference profile unavailable, serving unpersonalized feed",
			slog.String("component", "feed"),
			slog.Any("error", err),
		)
		profile = domain.PreferenceProfile{}
	}
	ranked := Rank(cleaned, profile)

	var batch []domain.Article
	if diversify {
		batch = Interleave(ranked)
	} else {
		batch = make([]domain.Article, 0, len(ranked))
		for _, a := range ranked {
			if a.Category == selector {
				batch = append(batch, a)
			}
		}
	}

	s.log.Info("Feed assembled",
		slog.String("component", "feed"),
		slog.String("selector", string(selector)),
		slog.Int("raw_count", len(raw)),
		slog.Int("count", len(batch)),
		slog.Duration("duration", time.Since(start)),
	)
	return batch
}

// ArticleByURL ищет статью в снимке последней собранной пачки.
// Промах - пользовательское "не найдено", а не отказ сервиса.
func (s *FeedService) ArticleByURL(url string) (domain.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.snapshot[url]
	return a, ok
}

// RecordSelection фиксирует переход пользователя к статье рубрики,
// немедленно увеличивая её счетчик в хранилище предпочтений на единицу.
func (s *FeedService) RecordSelection(ctx context.Context, category domain.Category) error {
	if err := s.prefs.IncrementClicks(ctx, category); err != nil {
		return fmt.Errorf("failed to record selection for %s: %w", category, err)
	}
	s.log.Info("Selection recorded",
		slog.String("component", "feed"),
		slog.String("category", string(category)),
	)
	return nil
}

// Refresh пересобирает текущую кэш-запись, если её окно свежести истекло.
// Используется фоновым воркером для прогрева; никогда не форсирует,
// поэтому не нарушает идемпотентность выдачи внутри окна.
// Возвращает размер пачки и признак фактической пересборки.
func (s *FeedService) Refresh(ctx context.Context) (int, bool) {
	s.mu.Lock()
	selector := domain.CategoryAll
	if s.entry != nil {
		selector = s.entry.selector
	}
	fresh := s.freshLocked(selector)
	s.mu.Unlock()
	if fresh {
		return 0, false
	}
	batch := s.GetFeed(ctx, selector, false)
	return len(batch), true
}
