package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Init устанавливает tint-обработчик как логгер по умолчанию.
func Init(level slog.Leveler) *slog.Logger {
	l := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	slog.SetDefault(l)
	return l
}
