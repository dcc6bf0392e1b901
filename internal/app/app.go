package app

import (
	"go.uber.org/zap"

	"github.com/cosmonaut-api/internal/database"
	"github.com/cosmonaut-api/internal/metrics"
	"github.com/cosmonaut-api/internal/queue"
)

// App carries the collaborators shared by every request handler.
type App struct {
	Cosmonauts database.CosmonautStore
	Publisher  queue.Publisher
	Log        *zap.SugaredLogger
	Metrics    *metrics.Metrics
}
