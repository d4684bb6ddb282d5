package indievia

import (
	"context"
	"errors"
	"sync"

	"github.com/indievia/indievia-backend/pkg/pagination"
)

// ErrNoMorePages сервер сообщил, что страниц больше нет.
var ErrNoMorePages = errors.New("indievia: больше страниц нет")

// PageFetcher загружает страницу page (с единицы).
type PageFetcher[T any] func(ctx context.Context, page int) (*pagination.Page[T], error)

// Infinite бесконечный список. Наличие следующей страницы определяется
// только полями has_more/total_pages из ответа сервера.
type Infinite[T any] struct {
	mu    sync.Mutex
	fetch PageFetcher[T]
	pages []pagination.Page[T]
}

// NewInfinite создаёт список поверх функции загрузки страницы.
func NewInfinite[T any](fetch PageFetcher[T]) *Infinite[T] {
	return &Infinite[T]{fetch: fetch}
}

// NextPage номер следующей страницы. До первой загрузки это 1.
func (l *Infinite[T]) NextPage() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextLocked()
}

func (l *Infinite[T]) nextLocked() (int, bool) {
	if len(l.pages) == 0 {
		return 1, true
	}
	return l.pages[len(l.pages)-1].NextPage()
}

// HasNextPage есть ли что загружать.
func (l *Infinite[T]) HasNextPage() bool {
	_, ok := l.NextPage()
	return ok
}

// FetchNext загружает следующую страницу и добавляет её к списку.
func (l *Infinite[T]) FetchNext(ctx context.Context) (*pagination.Page[T], error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, ok := l.nextLocked()
	if !ok {
		return nil, ErrNoMorePages
	}
	page, err := l.fetch(ctx, next)
	if err != nil {
		return nil, err
	}
	l.pages = append(l.pages, *page)
	return page, nil
}

// Pages загруженные страницы.
func (l *Infinite[T]) Pages() []pagination.Page[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]pagination.Page[T], len(l.pages))
	copy(out, l.pages)
	return out
}

// Items все элементы загруженных страниц подряд.
func (l *Infinite[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []T
	for _, p := range l.pages {
		out = append(out, p.Items...)
	}
	return out
}

// Reset сбрасывает список, следующая загрузка начнётся с первой страницы.
func (l *Infinite[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pages = nil
}
