package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const ConnectionCleanInterval = 5 * time.Minute

type StaleConnectionCloser interface {
	CloseStaleConnections(ctx context.Context) int
}

type ConnectionCleaner struct {
	closer   StaleConnectionCloser
	interval time.Duration
}

func NewConnectionCleaner(closer StaleConnectionCloser) *ConnectionCleaner {
	return &ConnectionCleaner{closer: closer, interval: ConnectionCleanInterval}
}

func (c *ConnectionCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info("Connection cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping connection cleaner...")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *ConnectionCleaner) cleanup(ctx context.Context) {
	if closed := c.closer.CloseStaleConnections(ctx); closed > 0 {
		log.Infof("Cleaner: terminated %d stale connections", closed)
	}
}
