package service

import (
	"context"
	"log/slog"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/email"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	ExistingOrder *domain.Order
	GetErr        error
	InsertErr     error
	InsertedOrder *domain.Order // Captures the order passed to InsertOrder

	CorpnetCheckoutID string
	CorpnetOrderID    string
	SetCorpnetErr     error

	UpdatedStatus string
	UpdateErr     error
}

func (m *MockOrderRepository) InsertOrder(_ context.Context, order *domain.Order) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.InsertedOrder = order
	return nil
}

func (m *MockOrderRepository) GetOrderByCheckoutID(_ context.Context, _ string) (*domain.Order, error) {
	return m.ExistingOrder, m.GetErr
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, _ string) (*domain.Order, error) {
	return m.ExistingOrder, m.GetErr
}

func (m *MockOrderRepository) ListOrders(_ context.Context, _, _ int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (m *MockOrderRepository) ListAllOrders(_ context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (m *MockOrderRepository) SetCorpnetOrderID(_ context.Context, checkoutID, corpnetOrderID string) error {
	if m.SetCorpnetErr != nil {
		return m.SetCorpnetErr
	}
	m.CorpnetCheckoutID = checkoutID
	m.CorpnetOrderID = corpnetOrderID
	return nil
}

func (m *MockOrderRepository) UpdatePaymentStatus(_ context.Context, _, status string) (*domain.Order, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.UpdatedStatus = status
	order := *m.ExistingOrder
	order.PaymentStatus = status
	return &order, nil
}

var _ repository.OrderRepository = (*MockOrderRepository)(nil)

// MockMailer implements email.Mailer for testing
type MockMailer struct {
	ConfirmationErr error
	AlertErr        error
	StatusErr       error

	ConfirmationsSent int
	AlertsSent        int
	StatusSent        int
	LastStatus        string
	SendCtxErr        error // ctx.Err() observed by the last send
}

func (m *MockMailer) SendConfirmation(ctx context.Context, _ email.OrderEmailData) (string, error) {
	m.SendCtxErr = ctx.Err()
	if m.ConfirmationErr != nil {
		return "", m.ConfirmationErr
	}
	m.ConfirmationsSent++
	return "msg-confirmation", nil
}

func (m *MockMailer) SendAdminAlert(_ context.Context, _ email.OrderEmailData) (string, error) {
	if m.AlertErr != nil {
		return "", m.AlertErr
	}
	m.AlertsSent++
	return "msg-alert", nil
}

func (m *MockMailer) SendStatusUpdate(_ context.Context, _ email.OrderEmailData, status string) (string, error) {
	if m.StatusErr != nil {
		return "", m.StatusErr
	}
	m.StatusSent++
	m.LastStatus = status
	return "msg-status", nil
}

var _ email.Mailer = (*MockMailer)(nil)

// MockPartnerClient implements PartnerClient for testing
type MockPartnerClient struct {
	OrderID         string
	Err             error
	Calls           int
	LastAmount      float64
	LastCompany     string
	CallCtxErr      error
	CallHadDeadline bool
}

func (m *MockPartnerClient) CreateOrder(ctx context.Context, order *domain.Order, totalAmount float64) (string, error) {
	m.Calls++
	m.CallCtxErr = ctx.Err()
	_, m.CallHadDeadline = ctx.Deadline()
	m.LastAmount = totalAmount
	m.LastCompany = order.CompanyInfo.CompanyDesiredName
	if m.Err != nil {
		return "", m.Err
	}
	return m.OrderID, nil
}

// MockEventPublisher implements EventPublisher for testing
type MockEventPublisher struct {
	Err       error
	Published []*domain.Order
}

func (m *MockEventPublisher) PublishOrderCreated(_ context.Context, order *domain.Order) error {
	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, order)
	return nil
}

func newTestOrderService(repo *MockOrderRepository, mailer *MockMailer, partner *MockPartnerClient, events *MockEventPublisher) *OrderService {
	return NewOrderService(repo, mailer, partner, events, slog.New(slog.DiscardHandler))
}
