package goroutine

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
	done chan struct{}
}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
	l.mu.Unlock()
	close(l.done)
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	log := &recordingLogger{done: make(chan struct{})}
	rh := NewRecoveryHandler(log)

	rh.SafeGo(func() { panic("boom") })
	<-log.done

	log.mu.Lock()
	defer log.mu.Unlock()
	assert.Len(t, log.msgs, 1)
	assert.Contains(t, log.msgs[0], "boom")
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "notification")

	got := make(chan interface{}, 1)
	NewRecoveryHandler(&recordingLogger{done: make(chan struct{})}).SafeGoWithContext(ctx, func(ctx context.Context) {
		got <- ctx.Value(key{})
	})

	assert.Equal(t, "notification", <-got)
}
