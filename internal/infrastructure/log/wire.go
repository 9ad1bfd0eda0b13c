package log

import (
	"log/slog"

	"github.com/google/wire"
)

// ProvideAppLogger 应用主流程 logger
func ProvideAppLogger() *slog.Logger {
	return NewModuleLogger("app", "main")
}

// ProviderSet 日志基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideAppLogger,
)
