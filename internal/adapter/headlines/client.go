package headlines

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"newsfeed/internal/config"
	"newsfeed/internal/domain"
	"time"
)

// responseJSON описывает ответ эндпоинта top-headlines провайдера.
type responseJSON struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []articleJSON `json:"articles"`
}

type articleJSON struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// Client реализует загрузку свежих заголовков у внешнего провайдера по HTTP.
// Содержит HTTP-клиент для выполнения запросов и логгер для записи событий.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	country string
	log     *slog.Logger
}

// NewClient создает новый экземпляр клиента провайдера заголовков.
// Использует стандартный HTTP-клиент и переданный логгер для записи событий.
func NewClient(cfg config.SourceConfig, log *slog.Logger) *Client {
	return &Client{
		client:  http.DefaultClient,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		country: cfg.Country,
		log:     log,
	}
}

// TopHeadlines запрашивает свежие заголовки указанной рубрики и помечает
// каждую статью этой рубрикой. Принимает контекст для контроля времени
// выполнения и отмены операции.
// В случае ошибки возвращает детальное описание проблемы с учетом
// HTTP-статуса и статуса в теле ответа.
func (c *Client) TopHeadlines(ctx context.Context, category domain.Category) ([]domain.Article, error) {
	log := c.log.With(slog.String("category", string(category)))
	params := url.Values{}
	params.Set("country", c.country)
	params.Set("category", string(category))
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + "/top-headlines?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request for category %s: %w", category, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch headlines for category %s: %w", category, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Error("Unexpected status code", slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("unexpected status code: %d for category %s", resp.StatusCode, category)
	}
	var body responseJSON
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Error("Error decoding response", slog.Any("error", err))
		return nil, fmt.Errorf("failed to decode headlines response: %w", err)
	}
	if body.Status != "ok" {
		log.Error("Provider reported failure", slog.String("status", body.Status))
		return nil, fmt.Errorf("provider status %q for category %s", body.Status, category)
	}
	articles := make([]domain.Article, 0, len(body.Articles))
	for _, dto := range body.Articles {
		articles = append(articles, domain.Article{
			Title:       dto.Title,
			Description: dto.Description,
			URL:         dto.URL,
			ImageURL:    dto.URLToImage,
			Category:    category,
			Content:     dto.Content,
			Author:      dto.Author,
			PublishedAt: parsePublishedAt(dto.PublishedAt),
		})
	}
	log.Debug("Headlines fetched", slog.Int("count", len(articles)))
	return articles, nil
}

// parsePublishedAt - вспомогательная функция для парсинга даты публикации.
// Провайдер присылает RFC3339; нераспознанная дата не делает статью
// непригодной, поэтому ошибки сводятся к нулевому времени.
func parsePublishedAt(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return time.Time{}
	}
	return t
}
