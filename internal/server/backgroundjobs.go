package server

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal/logging"
	"github.com/shareclass/accounts/internal/repeat"
	"github.com/shareclass/accounts/internal/server/data"
)

// SetupBackgroundJobs starts the periodic cleanup of rows that have expired.
// Expired reset tokens are purged on a short interval so a stale token is
// removed not long after its window closes; expired sessions are purged less
// often since lookups already check the expiry.
func (s *Server) SetupBackgroundJobs(ctx context.Context) {
	s.registerJob(ctx, "remove expired reset tokens", 15*time.Minute, func(db *gorm.DB, now time.Time) error {
		return data.DeleteExpiredResetTokens(db, now)
	})
	s.registerJob(ctx, "remove expired sessions", time.Hour, func(db *gorm.DB, now time.Time) error {
		return data.DeleteExpiredSessions(db, now)
	})
}

func (s *Server) registerJob(ctx context.Context, name string, every time.Duration, job func(db *gorm.DB, now time.Time) error) {
	repeat.Start(ctx, every, func(ctx context.Context) {
		startAt := time.Now().UTC()
		logging.Debugf("background job %s starting", name)

		if err := job(s.db.WithContext(ctx), startAt); err != nil {
			logging.Errorf("background job %s error: %s", name, err)
			return
		}
		logging.Debugf("background job %s successful, elapsed: %s", name, time.Since(startAt))
	})
}
