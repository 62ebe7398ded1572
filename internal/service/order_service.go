package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/email"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

// PartnerClient submits a persisted order to the fulfillment partner.
type PartnerClient interface {
	CreateOrder(ctx context.Context, order *domain.Order, totalAmount float64) (string, error)
}

// EventPublisher emits order lifecycle events; best effort only.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
}

// CompletedSession is the slice of a verified checkout.session.completed
// event the pipeline consumes.
type CompletedSession struct {
	ID            string
	PaymentStatus string
	AmountTotal   int64 // cents
	Metadata      map[string]string
}

type ProcessOutcome int

const (
	OutcomeProcessed ProcessOutcome = iota
	OutcomeAlreadyProcessed
)

// OrderService runs the order-intake pipeline: idempotency gate, order
// materialization, persistence, then best-effort notification and partner
// submission.
type OrderService struct {
	repo              repository.OrderRepository
	mailer            email.Mailer
	partner           PartnerClient
	events            EventPublisher
	logger            *slog.Logger
	sideEffectTimeout time.Duration
}

func NewOrderService(
	repo repository.OrderRepository,
	mailer email.Mailer,
	partner PartnerClient,
	events EventPublisher,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		repo:              repo,
		mailer:            mailer,
		partner:           partner,
		events:            events,
		logger:            logger,
		sideEffectTimeout: 8 * time.Second,
	}
}

// ProcessCompletedSession handles one webhook delivery for a completed
// checkout session. Persistence is the commit point: once the order is
// inserted, notification and partner failures are logged but never surfaced,
// so Stripe gets a success response and stops redelivering.
func (s *OrderService) ProcessCompletedSession(ctx context.Context, sess *CompletedSession) (ProcessOutcome, error) {
	// Idempotency gate. Stripe redelivers events; a session that already has
	// an order is done.
	_, err := s.repo.GetOrderByCheckoutID(ctx, sess.ID)
	if err == nil {
		s.logger.Info("session already processed", "checkout_id", sess.ID)
		return OutcomeAlreadyProcessed, nil
	}
	if !errors.Is(err, repository.ErrOrderNotFound) {
		return 0, err
	}

	order := domain.MaterializeOrder(sess.Metadata)
	order.StripeCheckoutID = sess.ID
	order.PaymentStatus = sess.PaymentStatus
	order.PaymentAmount = float64(sess.AmountTotal) / 100

	if err := s.repo.InsertOrder(ctx, &order); err != nil {
		// A concurrent delivery won the insert race; same as already
		// processed.
		if errors.Is(err, repository.ErrDuplicateOrder) {
			s.logger.Info("concurrent duplicate insert", "checkout_id", sess.ID)
			return OutcomeAlreadyProcessed, nil
		}
		return 0, err
	}
	s.logger.Info("order persisted",
		"checkout_id", sess.ID,
		"company", order.CompanyInfo.CompanyDesiredName)

	// Side effects share one deadline, detached from the request context so a
	// closed webhook connection cannot cancel them after the commit point.
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout)
	defer cancel()

	s.notify(sideCtx, &order)
	s.submitToPartner(sideCtx, &order, domain.TotalAmount(sess.Metadata))
	s.publishEvent(sideCtx, &order)

	return OutcomeProcessed, nil
}

// notify sends the customer confirmation and the internal alert. The alert is
// attempted even when the confirmation failed; neither outcome affects the
// webhook response.
func (s *OrderService) notify(ctx context.Context, order *domain.Order) {
	data := email.OrderEmailData{
		Contact:         order.Contact,
		CompanyInfo:     order.CompanyInfo,
		SelectedPackage: order.SelectedPackage,
		FilingSpeed:     order.FilingSpeed,
	}

	if msgID, err := s.mailer.SendConfirmation(ctx, data); err != nil {
		s.logger.Error("confirmation email failed",
			"checkout_id", order.StripeCheckoutID, "error", err)
	} else {
		s.logger.Info("confirmation email sent",
			"to", order.Contact.ContactEmail, "message_id", msgID)
	}

	if msgID, err := s.mailer.SendAdminAlert(ctx, data); err != nil {
		s.logger.Error("admin alert email failed",
			"checkout_id", order.StripeCheckoutID, "error", err)
	} else {
		s.logger.Info("admin alert email sent", "message_id", msgID)
	}
}

// submitToPartner forwards the order to CorpNet and, on success, attaches the
// partner order id to the already-persisted record. Failure leaves the record
// without a partner id; no retry, no rollback.
func (s *OrderService) submitToPartner(ctx context.Context, order *domain.Order, totalAmount float64) {
	if totalAmount == 0 {
		totalAmount = order.SelectedPackage.TotalPrice
	}

	corpnetID, err := s.partner.CreateOrder(ctx, order, totalAmount)
	if err != nil {
		s.logger.Error("corpnet submission failed",
			"checkout_id", order.StripeCheckoutID, "error", err)
		return
	}

	if err := s.repo.SetCorpnetOrderID(ctx, order.StripeCheckoutID, corpnetID); err != nil {
		s.logger.Error("failed to attach corpnet order id",
			"checkout_id", order.StripeCheckoutID,
			"corpnet_order_id", corpnetID, "error", err)
		return
	}
	order.CorpnetOrderID = corpnetID
	s.logger.Info("corpnet order created",
		"checkout_id", order.StripeCheckoutID, "corpnet_order_id", corpnetID)
}

func (s *OrderService) publishEvent(ctx context.Context, order *domain.Order) {
	if s.events == nil {
		return
	}

	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Error("order event publish failed",
			"checkout_id", order.StripeCheckoutID, "error", err)
	}
}

// UpdateStatus changes an order's payment status from the admin dashboard and
// sends a best-effort status email to the customer.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	order, err := s.repo.UpdatePaymentStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	data := email.OrderEmailData{
		Contact:         order.Contact,
		CompanyInfo:     order.CompanyInfo,
		SelectedPackage: order.SelectedPackage,
		FilingSpeed:     order.FilingSpeed,
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sideEffectTimeout)
	defer cancel()

	if _, err := s.mailer.SendStatusUpdate(sendCtx, data, status); err != nil {
		s.logger.Error("status update email failed",
			"order_id", orderID, "status", status, "error", err)
	}

	return order, nil
}
