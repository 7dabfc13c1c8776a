package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartSessionCleaner deletes expired auth sessions every interval until ctx
// is done.
func StartSessionCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				_, _ = CleanExpiredSessions(ctx, db, now.UTC(), log)
			}
		}
	}()
}

// CleanExpiredSessions removes sessions that expired before now and reports
// how many were deleted. Failures are logged and returned.
func CleanExpiredSessions(ctx context.Context, db *sql.DB, now time.Time, log *zap.Logger) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		log.Error("failed to clean expired sessions", zap.Error(err))
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		log.Info("cleaned expired sessions", zap.Int64("removed", rows))
	}
	return rows, nil
}
