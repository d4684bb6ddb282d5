package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/indievia/indievia-backend/internal/logger"
)

// Logger интерфейс для логирования ошибок.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler обрабатывает panic в горутинах.
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создает новый обработчик.
func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// SafeGo запускает горутину с обработкой panic.
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go func() {
		defer rh.recover()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer rh.recover()
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) recover() {
	if r := recover(); r != nil {
		rh.logger.Errorf("Panic in goroutine: %v\nStack trace:\n%s", r, debug.Stack())
	}
}

// lazyLogger откладывает обращение к logger.L() до первой паники.
type lazyLogger struct{}

func (lazyLogger) Errorf(format string, args ...interface{}) {
	logger.WithComponent("goroutine").Logf(logrus.ErrorLevel, format, args...)
}

// DefaultRecoveryHandler глобальный обработчик, пишущий в logrus.
var DefaultRecoveryHandler = NewRecoveryHandler(lazyLogger{})

// SafeGo упрощенная функция для запуска безопасной горутины.
func SafeGo(fn func()) {
	DefaultRecoveryHandler.SafeGo(fn)
}

// SafeGoWithContext упрощенная функция для запуска безопасной горутины с контекстом.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	DefaultRecoveryHandler.SafeGoWithContext(ctx, fn)
}
