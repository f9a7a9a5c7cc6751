package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const OAuthStateCleanInterval = 15 * time.Minute

type ExpiredStateCleaner interface {
	CleanExpiredStates() (int64, error)
}

type OAuthStateCleaner struct {
	states   ExpiredStateCleaner
	interval time.Duration
}

func NewOAuthStateCleaner(states ExpiredStateCleaner) *OAuthStateCleaner {
	return &OAuthStateCleaner{states: states, interval: OAuthStateCleanInterval}
}

func (o *OAuthStateCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	log.Info("OAuth state cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping OAuth state cleaner...")
			return
		case <-ticker.C:
			o.cleanup()
		}
	}
}

func (o *OAuthStateCleaner) cleanup() {
	removed, err := o.states.CleanExpiredStates()
	if err != nil {
		log.Errorf("Cleaner: failed to delete expired oauth states: %v", err)
		return
	}

	log.Debugf("Cleaner: swept %d expired oauth states", removed)
}
