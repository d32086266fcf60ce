package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога консолей и игр
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetConsole получает метаданные консоли
func (c *Client) GetConsole(ctx context.Context, consoleID int64) (*Console, error) {
	var console Console
	if err := c.getJSON(ctx, fmt.Sprintf("%s/internal/consoles/%d", c.baseURL, consoleID), ErrConsoleNotFound, &console); err != nil {
		return nil, err
	}
	return &console, nil
}

// GetGame получает метаданные игры
func (c *Client) GetGame(ctx context.Context, gameID int64) (*Game, error) {
	var game Game
	if err := c.getJSON(ctx, fmt.Sprintf("%s/internal/games/%d", c.baseURL, gameID), ErrGameNotFound, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// GetGamesByIDs получает метаданные набора игр одним запросом
// Недоступность каталога деградирует до пустого набора (ErrServiceDegraded):
// поиск отдаёт станции без названий игр, но не падает
func (c *Client) GetGamesByIDs(ctx context.Context, gameIDs []int64) (map[int64]*Game, error) {
	if len(gameIDs) == 0 {
		return map[int64]*Game{}, nil
	}

	url := fmt.Sprintf("%s/internal/games:batch?ids=%s", c.baseURL, joinIDs(gameIDs))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Catalog unavailable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("Catalog batch request failed with status %d, applying graceful degradation: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrServiceDegraded, resp.StatusCode)
	}

	var games []Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := make(map[int64]*Game, len(games))
	for i := range games {
		result[games[i].ID] = &games[i]
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, url string, notFound error, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func joinIDs(ids []int64) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", id)
	}
	return s
}
