package postgres

import (
	"context"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/repository"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *txManager {
	return &txManager{db: db}
}

// WithinTransaction runs fn with repositories bound to one transaction.
// An error from fn rolls back every write made through them.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
