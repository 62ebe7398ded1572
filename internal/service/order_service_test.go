package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

func completedSession() *CompletedSession {
	return &CompletedSession{
		ID:            "cs_test_123",
		PaymentStatus: "paid",
		AmountTotal:   29900,
		Metadata: map[string]string{
			domain.MetaContact:     `{"ContactEmail":"jane@example.com","ContactFirstName":"Jane","ContactLastName":"Doe"}`,
			domain.MetaCompanyInfo: `{"CompanyDesiredName":"Acme Holdings LLC"}`,
			domain.MetaPackage:     `{"id":"basic","name":"Basic","price":"99","totalPrice":299}`,
			domain.MetaFilingSpeed: "standard",
			domain.MetaTotalAmount: "299",
		},
	}
}

func TestProcessCompletedSession_NewSession(t *testing.T) {
	repo := &MockOrderRepository{GetErr: repository.ErrOrderNotFound}
	mailer := &MockMailer{}
	partner := &MockPartnerClient{OrderID: "corp-789"}
	events := &MockEventPublisher{}
	svc := newTestOrderService(repo, mailer, partner, events)

	outcome, err := svc.ProcessCompletedSession(context.Background(), completedSession())

	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)

	require.NotNil(t, repo.InsertedOrder)
	assert.Equal(t, "cs_test_123", repo.InsertedOrder.StripeCheckoutID)
	assert.Equal(t, "paid", repo.InsertedOrder.PaymentStatus)
	assert.Equal(t, 299.0, repo.InsertedOrder.PaymentAmount)
	assert.Equal(t, "Acme Holdings LLC", repo.InsertedOrder.CompanyInfo.CompanyDesiredName)

	assert.Equal(t, 1, mailer.ConfirmationsSent)
	assert.Equal(t, 1, mailer.AlertsSent)
	assert.Equal(t, 1, partner.Calls)
	assert.Equal(t, 299.0, partner.LastAmount)
	assert.Equal(t, "corp-789", repo.CorpnetOrderID)
	assert.Len(t, events.Published, 1)
}

func TestProcessCompletedSession_AlreadyProcessed(t *testing.T) {
	repo := &MockOrderRepository{
		ExistingOrder: &domain.Order{StripeCheckoutID: "cs_test_123"},
	}
	mailer := &MockMailer{}
	partner := &MockPartnerClient{}
	svc := newTestOrderService(repo, mailer, partner, &MockEventPublisher{})

	outcome, err := svc.ProcessCompletedSession(context.Background(), completedSession())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyProcessed, outcome)
	// No side effects fire on a redelivery.
	assert.Nil(t, repo.InsertedOrder)
	assert.Zero(t, mailer.ConfirmationsSent)
	assert.Zero(t, partner.Calls)
}

func TestProcessCompletedSession_ConcurrentDuplicateInsert(t *testing.T) {
	repo := &MockOrderRepository{
		GetErr:    repository.ErrOrderNotFound,
		InsertErr: repository.ErrDuplicateOrder,
	}
	mailer := &MockMailer{}
	partner := &MockPartnerClient{}
	svc := newTestOrderService(repo, mailer, partner, &MockEventPublisher{})

	outcome, err := svc.ProcessCompletedSession(context.Background(), completedSession())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyProcessed, outcome)
	assert.Zero(t, mailer.ConfirmationsSent)
	assert.Zero(t, partner.Calls)
}

func TestProcessCompletedSession_InsertError(t *testing.T) {
	repo := &MockOrderRepository{
		GetErr:    repository.ErrOrderNotFound,
		InsertErr: errors.New("mongo down"),
	}
	svc := newTestOrderService(repo, &MockMailer{}, &MockPartnerClient{}, &MockEventPublisher{})

	_, err := svc.ProcessCompletedSession(context.Background(), completedSession())
	assert.Error(t, err)
}

func TestProcessCompletedSession_GateLookupError(t *testing.T) {
	repo := &MockOrderRepository{GetErr: errors.New("mongo down")}
	svc := newTestOrderService(repo, &MockMailer{}, &MockPartnerClient{}, &MockEventPublisher{})

	_, err := svc.ProcessCompletedSession(context.Background(), completedSession())
	assert.Error(t, err)
	assert.Nil(t, repo.InsertedOrder)
}

func TestProcessCompletedSession_EmailFailureDoesNotFailPipeline(t *testing.T) {
	repo := &MockOrderRepository{GetErr: repository.ErrOrderNotFound}
	mailer := &MockMailer{ConfirmationErr: errors.New("smtp timeout")}
	partner := &MockPartnerClient{OrderID: "corp-1"}
	svc := newTestOrderService(repo, mailer, partner, &MockEventPublisher{})

	outcome, err := svc.ProcessCompletedSession(context.Background(), completedSession())

	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)
	// The admin alert is still attempted after the confirmation fails.
	assert.Equal(t, 1, mailer.AlertsSent)
	assert.Equal(t, 1, partner.Calls)
}

func TestProcessCompletedSession_PartnerFailureDoesNotFailPipeline(t *testing.T) {
	repo := &MockOrderRepository{GetErr: repository.ErrOrderNotFound}
	partner := &MockPartnerClient{Err: errors.New("corpnet 500")}
	svc := newTestOrderService(repo, &MockMailer{}, partner, &MockEventPublisher{})

	outcome, err := svc.ProcessCompletedSession(context.Background(), completedSession())

	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)
	require.NotNil(t, repo.InsertedOrder)
	// No partner id attached on failure; the order stays persisted.
	assert.Empty(t, repo.CorpnetOrderID)
}

func TestProcessCompletedSession_FallsBackToPackagePrice(t *testing.T) {
	sess := completedSession()
	delete(sess.Metadata, domain.MetaTotalAmount)

	repo := &MockOrderRepository{GetErr: repository.ErrOrderNotFound}
	partner := &MockPartnerClient{OrderID: "corp-1"}
	svc := newTestOrderService(repo, &MockMailer{}, partner, &MockEventPublisher{})

	_, err := svc.ProcessCompletedSession(context.Background(), sess)

	require.NoError(t, err)
	assert.Equal(t, 299.0, partner.LastAmount)
}

func TestProcessCompletedSession_SideEffectsSurviveCallerCancel(t *testing.T) {
	repo := &MockOrderRepository{GetErr: repository.ErrOrderNotFound}
	mailer := &MockMailer{}
	partner := &MockPartnerClient{OrderID: "corp-1"}
	svc := newTestOrderService(repo, mailer, partner, &MockEventPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := svc.ProcessCompletedSession(ctx, completedSession())

	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)
	// The committed order's side effects run on a detached deadline, so the
	// dead caller context never reaches them.
	assert.Equal(t, 1, mailer.ConfirmationsSent)
	assert.NoError(t, mailer.SendCtxErr)
	assert.Equal(t, 1, partner.Calls)
	assert.NoError(t, partner.CallCtxErr)
	assert.True(t, partner.CallHadDeadline)
}

func TestUpdateStatus_SendsStatusEmail(t *testing.T) {
	repo := &MockOrderRepository{
		ExistingOrder: &domain.Order{
			Contact:       domain.Contact{ContactEmail: "jane@example.com"},
			PaymentStatus: "pending",
		},
	}
	mailer := &MockMailer{}
	svc := newTestOrderService(repo, mailer, &MockPartnerClient{}, &MockEventPublisher{})

	order, err := svc.UpdateStatus(context.Background(), "65f000000000000000000001", "approved")

	require.NoError(t, err)
	assert.Equal(t, "approved", order.PaymentStatus)
	assert.Equal(t, "approved", repo.UpdatedStatus)
	assert.Equal(t, "approved", mailer.LastStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := &MockOrderRepository{UpdateErr: repository.ErrOrderNotFound}
	mailer := &MockMailer{}
	svc := newTestOrderService(repo, mailer, &MockPartnerClient{}, &MockEventPublisher{})

	_, err := svc.UpdateStatus(context.Background(), "missing", "approved")

	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	assert.Zero(t, mailer.StatusSent)
}
