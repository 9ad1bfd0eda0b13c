package infrastructure

import (
	"github.com/google/wire"

	"github.com/todoapp/backend/internal/infrastructure/config"
	"github.com/todoapp/backend/internal/infrastructure/log"
	"github.com/todoapp/backend/internal/infrastructure/metrics"
	"github.com/todoapp/backend/internal/infrastructure/notification"
	"github.com/todoapp/backend/internal/infrastructure/storage"
	"github.com/todoapp/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	log.ProviderSet,
	storage.ProviderSet,
	websocket.ProviderSet,
	notification.ProviderSet,
	metrics.ProviderSet,
)
