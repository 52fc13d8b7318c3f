package store

import (
	"context"

	"github.com/sitebrief/auth-service/internal/model"
)

func (p *PostgresStore) CreateLoginAttempt(ctx context.Context, attempt *model.LoginAttempt) error {
	err := p.db.WithContext(ctx).Create(&attempt).Error
	if err != nil {
		return err
	}

	return nil
}

// CountRecentLoginFailures filters the lockout window at query time;
// attempt rows are never expired or cleaned up.
func (p *PostgresStore) CountRecentLoginFailures(ctx context.Context, username string) (int64, error) {
	var count int64

	err := p.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM login_attempts
		WHERE username = ?
		AND status = 'failure'
		AND created_at >= NOW() - INTERVAL '15 minutes';
		`, username).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
