package indievia

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// QueryCache кэш ответов по ключу "сущность:фильтры". Invalidate не удаляет
// данные, а помечает их устаревшими: следующий Fetch сходит на сервер, а Peek
// продолжает отдавать последнее известное значение.
//
// Каждая мутация и инвалидация увеличивает epoch. Загрузка, начатая до этого,
// не перезаписывает затронутые ключи: её ответ уже не отражает сервер.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	group   singleflight.Group

	epoch    uint64
	keyMarks map[string]uint64
	prefixes map[string]uint64
}

type cacheEntry struct {
	value interface{}
	stale bool
}

// NewQueryCache создаёт пустой кэш.
func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries:  make(map[string]*cacheEntry),
		keyMarks: make(map[string]uint64),
		prefixes: make(map[string]uint64),
	}
}

// Key собирает ключ из сущности и фильтров. Порядок фильтров не важен.
func Key(entity string, filters Filters) string {
	if len(filters) == 0 {
		return entity
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+filters[k])
	}
	return entity + ":" + strings.Join(parts, "&")
}

// Set кладёт свежее значение.
func (q *QueryCache) Set(key string, value interface{}) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[key] = &cacheEntry{value: value}
}

// Delete убирает ключ целиком.
func (q *QueryCache) Delete(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, key)
}

// Invalidate помечает устаревшими все ключи с префиксом. Загрузки этих
// ключей, которые уже идут, в кэш не попадут.
func (q *QueryCache) Invalidate(prefix string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.epoch++
	q.prefixes[prefix] = q.epoch
	for k, e := range q.entries {
		if strings.HasPrefix(k, prefix) {
			e.stale = true
		}
	}
}

// mark отмечает начало мутации ключа.
func (q *QueryCache) mark(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.epoch++
	q.keyMarks[key] = q.epoch
}

// begin возвращает epoch, с которым начинается загрузка.
func (q *QueryCache) begin() uint64 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.epoch
}

// setIfCurrent кладёт результат загрузки, начатой в epoch since, только если
// ключ с тех пор не мутировали и не инвалидировали.
func (q *QueryCache) setIfCurrent(key string, value interface{}, since uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.keyMarks[key] > since {
		return false
	}
	for prefix, at := range q.prefixes {
		if at > since && strings.HasPrefix(key, prefix) {
			return false
		}
	}
	q.entries[key] = &cacheEntry{value: value}
	return true
}

// IsStale сообщает, нужно ли перечитать ключ. Отсутствующий ключ устарел.
func (q *QueryCache) IsStale(key string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	e, ok := q.entries[key]
	return !ok || e.stale
}

func (q *QueryCache) peek(key string) (interface{}, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	e, ok := q.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Snapshot состояние одного ключа до мутации.
type Snapshot struct {
	key     string
	value   interface{}
	stale   bool
	present bool
}

// Snapshot запоминает текущее состояние ключа.
func (q *QueryCache) Snapshot(key string) Snapshot {
	q.mu.RLock()
	defer q.mu.RUnlock()
	e, ok := q.entries[key]
	if !ok {
		return Snapshot{key: key}
	}
	return Snapshot{key: key, value: e.value, stale: e.stale, present: true}
}

// Restore возвращает ключ в состояние снимка, включая отсутствие.
func (q *QueryCache) Restore(s Snapshot) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !s.present {
		delete(q.entries, s.key)
		return
	}
	q.entries[s.key] = &cacheEntry{value: s.value, stale: s.stale}
}

// Peek возвращает закэшированное значение без похода на сервер.
func Peek[T any](q *QueryCache, key string) (T, bool) {
	var zero T
	v, ok := q.peek(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Fetch отдаёт свежее значение из кэша или загружает его. Параллельные
// загрузки одного ключа объединяются в один запрос. Если за время загрузки
// ключ мутировали или инвалидировали, ответ отдаётся вызывающему, но в кэш
// не пишется.
func Fetch[T any](ctx context.Context, q *QueryCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if !q.IsStale(key) {
		if v, ok := Peek[T](q, key); ok {
			return v, nil
		}
	}

	var zero T
	v, err, _ := q.group.Do(key, func() (interface{}, error) {
		since := q.begin()
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		q.setIfCurrent(key, loaded, since)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("indievia: ключ %q содержит %T", key, v)
	}
	return typed, nil
}
