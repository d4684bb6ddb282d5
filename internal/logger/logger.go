package logger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	Log         *logrus.Logger
	defaultOnce sync.Once
)

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// L возвращает логгер, даже если Init ещё не вызывался (тесты, утилиты).
func L() *logrus.Logger {
	defaultOnce.Do(func() {
		if Log == nil {
			Init("info")
		}
	})
	return Log
}

// WithComponent возвращает entry с полем component.
func WithComponent(name string) *logrus.Entry {
	return L().WithField("component", name)
}
