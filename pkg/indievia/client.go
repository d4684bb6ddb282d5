// Package indievia клиент HTTP API IndieVia: кэш запросов, бесконечные
// списки, оптимистичные мутации ответов на отзывы и загрузка файлов.
package indievia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Client вызывает API IndieVia. Безопасен для конкурентного использования.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *QueryCache
	log        *logrus.Entry

	mu    sync.RWMutex
	token string
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт, тесты).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger направляет отладочные сообщения клиента в заданный logrus entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Client) { c.log = entry }
}

// WithToken задаёт access токен сразу при создании.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient создаёт клиента. baseURL без /api, например https://api.indievia.com.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: NewQueryCache(),
		log:   logrus.NewEntry(logrus.StandardLogger()).WithField("component", "indievia-sdk"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken меняет access токен, например после refresh.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Cache кэш запросов клиента.
func (c *Client) Cache() *QueryCache {
	return c.cache
}

// Filters параметры запроса списка. Входят в ключ кэша.
type Filters map[string]string

func (f Filters) values() url.Values {
	v := url.Values{}
	for k, val := range f {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// APIError любая неудача вызова: сеть, статус ответа или разбор конверта.
// Status равен 0, если ответа не было.
type APIError struct {
	Status  int
	Message string
	Field   string
	File    string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("indievia: %s", e.Message)
	}
	return fmt.Sprintf("indievia: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// AsAPIError достаёт *APIError из цепочки.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Field string          `json:"field"`
	File  string          `json:"file"`
}

// Query читает таблицу: GET /api/<table>?filters. out получает поле data.
func (c *Client) Query(ctx context.Context, table string, filters Filters, out interface{}) error {
	path := "/api/" + strings.TrimLeft(table, "/")
	if q := filters.values().Encode(); q != "" {
		path += "?" + q
	}
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Invoke вызывает именованную функцию бэкенда: <method> /api/<function>.
func (c *Client) Invoke(ctx context.Context, method, function string, body, out interface{}) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: "не удалось сериализовать запрос", Err: err}
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, method, "/api/"+strings.TrimLeft(function, "/"), reader, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Message: "некорректный запрос", Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: "сервер недоступен", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusAccepted {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode), Err: err}
		}
		return &APIError{Status: resp.StatusCode, Message: "некорректный ответ сервера", Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest || env.Error != "" {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.log.WithField("status", resp.StatusCode).WithField("path", path).Debug(msg)
		return &APIError{Status: resp.StatusCode, Message: msg, Field: env.Field, File: env.File}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "некорректный ответ сервера", Err: err}
	}
	return nil
}
