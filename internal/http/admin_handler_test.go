package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/musfiqshanta/launchmybiz-backend/internal/auth"
	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

type fakeOrderRepo struct {
	order  *domain.Order
	orders []domain.Order
	err    error
}

func (f *fakeOrderRepo) InsertOrder(_ context.Context, _ *domain.Order) error {
	return f.err
}

func (f *fakeOrderRepo) GetOrderByCheckoutID(_ context.Context, _ string) (*domain.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, _ string) (*domain.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, _, _ int) ([]domain.Order, int64, error) {
	return f.orders, int64(len(f.orders)), f.err
}

func (f *fakeOrderRepo) ListAllOrders(_ context.Context) ([]domain.Order, error) {
	return f.orders, f.err
}

func (f *fakeOrderRepo) SetCorpnetOrderID(_ context.Context, _, _ string) error {
	return f.err
}

func (f *fakeOrderRepo) UpdatePaymentStatus(_ context.Context, _, _ string) (*domain.Order, error) {
	return f.order, f.err
}

type fakeStatusUpdater struct {
	order *domain.Order
	err   error
}

func (f *fakeStatusUpdater) UpdateStatus(_ context.Context, _, _ string) (*domain.Order, error) {
	return f.order, f.err
}

func newTestAdminHandler(orders repository.OrderRepository) *AdminHandler {
	return NewAdminHandler(
		&fakeAdminRepo{},
		orders,
		&fakeStatusUpdater{},
		auth.NewTokenManager("test-secret"),
		slog.New(slog.DiscardHandler),
		5*time.Second,
		false,
	)
}

func exportOrderRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/business-orders/"+id+"/export", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestExportOrder_Success(t *testing.T) {
	orderID := primitive.NewObjectID()
	repo := &fakeOrderRepo{order: &domain.Order{
		ID:      orderID,
		Contact: domain.Contact{ContactEmail: "jane@example.com"},
		CompanyInfo: domain.CompanyInfo{
			CompanyDesiredName: "Acme Holdings LLC",
		},
		PaymentStatus: "paid",
	}}
	h := newTestAdminHandler(repo)

	rec := httptest.NewRecorder()
	h.ExportOrder(rec, exportOrderRequest(orderID.Hex()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"),
		"business-order-"+orderID.Hex()+".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Business Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + the one order
	assert.Equal(t, "jane@example.com", rows[1][0])
	assert.Contains(t, rows[1], "Acme Holdings LLC")
}

func TestExportOrder_NotFound(t *testing.T) {
	repo := &fakeOrderRepo{err: repository.ErrOrderNotFound}
	h := newTestAdminHandler(repo)

	rec := httptest.NewRecorder()
	h.ExportOrder(rec, exportOrderRequest(primitive.NewObjectID().Hex()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
