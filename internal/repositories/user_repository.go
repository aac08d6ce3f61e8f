package repositories

import (
	"context"

	"github.com/SAP-F-2025/study-service/internal/models"
)

// UserRepository stores accounts. Users are created once and never updated.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
}
