package indievia

import (
	"context"
)

// Mutation описывает оптимистичное изменение одного ключа кэша.
type Mutation[T any] struct {
	Key string
	// Patch строит состояние, которое видно до ответа сервера.
	Patch func(current T, found bool) T
	// Call выполняет запрос. Если он вернул reconcile, тот применяется к
	// кэшу после успеха (например, заменяет временный ID настоящим).
	Call func(ctx context.Context) (reconcile func(T) T, err error)
	// Invalidate дополнительные префиксы, устаревающие после мутации.
	Invalidate []string
}

// Optimistic снимок, патч, запрос. При ошибке кэш возвращается к снимку и
// ошибка отдаётся вызывающему. В любом случае ключ помечается устаревшим.
// Загрузки ключа, начатые до мутации, её результат не перезапишут.
func Optimistic[T any](ctx context.Context, q *QueryCache, m Mutation[T]) error {
	q.mark(m.Key)
	snap := q.Snapshot(m.Key)
	current, found := Peek[T](q, m.Key)
	q.Set(m.Key, m.Patch(current, found))

	defer func() {
		q.Invalidate(m.Key)
		for _, prefix := range m.Invalidate {
			q.Invalidate(prefix)
		}
	}()

	reconcile, err := m.Call(ctx)
	if err != nil {
		q.Restore(snap)
		return err
	}
	if reconcile != nil {
		if patched, ok := Peek[T](q, m.Key); ok {
			q.Set(m.Key, reconcile(patched))
		}
	}
	return nil
}
