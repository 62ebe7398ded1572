package repository

import (
	"context"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
)

// OrderRepository defines the interface for order persistence.
// Consumers define this interface, not the MongoDB implementation.
type OrderRepository interface {
	// InsertOrder stores a new order. Returns ErrDuplicateOrder when an order
	// with the same stripe checkout id already exists.
	InsertOrder(ctx context.Context, order *domain.Order) error
	GetOrderByCheckoutID(ctx context.Context, checkoutID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, page, limit int) ([]domain.Order, int64, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	SetCorpnetOrderID(ctx context.Context, checkoutID, corpnetOrderID string) error
	UpdatePaymentStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

// UserRepository stores customer accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AdminRepository stores back-office accounts.
type AdminRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetAdminByID(ctx context.Context, id string) (*domain.Admin, error)
	UpdateAdminPassword(ctx context.Context, id, hashedPassword string) error
}
