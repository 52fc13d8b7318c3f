package store

import (
	"context"
	"errors"

	"github.com/sitebrief/auth-service/internal/model"
	"gorm.io/gorm"
)

func (p *PostgresStore) GetProject(ctx context.Context, documentID string) (*model.Project, error) {
	var project *model.Project

	err := p.db.WithContext(ctx).Model(&model.Project{}).Where("document_id = ?", documentID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return project, nil
}

func (p *PostgresStore) ListActiveProjects(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project

	err := p.db.WithContext(ctx).Model(&model.Project{}).Where("active = true").Order("name ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}

	return projects, nil
}
