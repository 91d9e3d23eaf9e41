package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartSweeper deletes expired sessions every interval until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		zap.S().Infof("[SESSION] sweeping expired sessions every %s", interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.DeleteExpired(ctx)
				if err != nil {
					zap.S().Warnf("[SESSION] sweep failed: %v", err)
					continue
				}
				if n > 0 {
					zap.S().Infof("[SESSION] removed %d expired sessions", n)
				}
			}
		}
	}()
}
