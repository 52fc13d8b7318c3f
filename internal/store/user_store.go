package store

import (
	"context"
	"errors"
	"time"

	"github.com/sitebrief/auth-service/internal/model"
	"gorm.io/gorm"
)

func (p *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	err := p.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		return err
	}

	return nil
}

// GetUserByUsername returns nil without error when no such user exists,
// so callers fail closed instead of branching on a store error.
func (p *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user *model.User

	err := p.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (p *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user *model.User

	err := p.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (p *PostgresStore) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user *model.User

	err := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (p *PostgresStore) UpdateLastLogin(ctx context.Context, userID uint, lastLoginAt time.Time) error {
	err := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("last_login_at", lastLoginAt).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	err := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
	if err != nil {
		return err
	}

	return nil
}
