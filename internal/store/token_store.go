package store

import (
	"context"
	"errors"

	"github.com/sitebrief/auth-service/internal/model"
	"gorm.io/gorm"
)

func (p *PostgresStore) CreateRememberToken(ctx context.Context, token *model.RememberToken) error {
	err := p.db.WithContext(ctx).Create(&token).Error
	if err != nil {
		return err
	}

	return nil
}

// DeleteRememberTokensByUserID hard-deletes so the unique token column
// stays clean across rotations.
func (p *PostgresStore) DeleteRememberTokensByUserID(ctx context.Context, userID uint) error {
	err := p.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&model.RememberToken{}).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) GetRememberTokenByUserID(ctx context.Context, userID uint) (*model.RememberToken, error) {
	var token *model.RememberToken

	err := p.db.WithContext(ctx).Model(&model.RememberToken{}).Where("user_id = ?", userID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return token, nil
}

func (p *PostgresStore) CreatePasswordResetToken(ctx context.Context, token *model.PasswordResetToken) error {
	err := p.db.WithContext(ctx).Create(&token).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) DeletePasswordResetTokensByUserID(ctx context.Context, userID uint) error {
	err := p.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&model.PasswordResetToken{}).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) GetPasswordResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var resetToken *model.PasswordResetToken

	err := p.db.WithContext(ctx).Model(&model.PasswordResetToken{}).Where("token = ?", token).First(&resetToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return resetToken, nil
}

func (p *PostgresStore) MarkPasswordResetTokenUsed(ctx context.Context, token string) error {
	err := p.db.WithContext(ctx).Model(&model.PasswordResetToken{}).Where("token = ?", token).Update("used", true).Error
	if err != nil {
		return err
	}

	return nil
}
