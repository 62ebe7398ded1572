package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
)

// EventCheckoutCompleted is the only event type the order pipeline consumes.
const EventCheckoutCompleted = "checkout.session.completed"

// Verifier authenticates inbound Stripe webhook events against the shared
// endpoint secret. ConstructEvent performs a constant-time signature check, so
// no field of the payload is trusted before it returns.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, v.secret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	return event, nil
}

// UnmarshalCheckoutSession decodes the session object nested in a verified
// event.
func UnmarshalCheckoutSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return &cs, nil
}

// Client creates Stripe Checkout sessions for the formation storefront.
type Client struct {
	successURL string
	cancelURL  string
}

func NewClient(secretKey, clientURL string) *Client {
	stripe.Key = secretKey
	return &Client{
		successURL: clientURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  clientURL + "/cancel",
	}
}

// CreateCheckoutSession opens a card payment session whose metadata carries
// the whole formation form, so the webhook pipeline can rebuild the order
// without any other state.
func (c *Client) CreateCheckoutSession(ctx context.Context, form *domain.CheckoutForm) (string, error) {
	amount := form.SelectedPackage.TotalPrice
	description := fmt.Sprintf("Business Registration for %s - %s",
		form.CompanyName, form.SelectedPackage.Name)

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(c.successURL),
		CancelURL:          stripe.String(c.cancelURL),
		CustomerEmail:      stripe.String(form.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
						Description: stripe.String(fmt.Sprintf("Package: %s - Filing Speed: %s",
							form.SelectedPackage.Name, form.FilingSpeed)),
					},
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	metadata, err := BuildSessionMetadata(form)
	if err != nil {
		return "", err
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return s.ID, nil
}

// BuildSessionMetadata flattens the form into Stripe's string-keyed metadata.
// Nested sections are JSON-encoded; domain.MaterializeOrder reverses this on
// the webhook side.
func BuildSessionMetadata(form *domain.CheckoutForm) (map[string]string, error) {
	md := map[string]string{}

	sections := map[string]any{
		domain.MetaContact:         form.Contact,
		domain.MetaCompanyInfo:     form.CompanyInfo,
		domain.MetaBusinessAddress: form.BusinessAddress,
		domain.MetaRegisterAgent:   form.RegisteredAgent,
		domain.MetaParticipants:    form.Participants,
		domain.MetaPackage:         form.SelectedPackage,
	}
	for key, section := range sections {
		raw, err := json.Marshal(section)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s metadata: %w", key, err)
		}
		md[key] = string(raw)
	}

	amount := strconv.FormatFloat(form.SelectedPackage.TotalPrice, 'f', -1, 64)
	md[domain.MetaFilingSpeed] = form.FilingSpeed
	md[domain.MetaTotalAmount] = amount
	md["packageId"] = form.SelectedPackage.ID
	md["packageName"] = form.SelectedPackage.Name
	md["packagePrice"] = form.SelectedPackage.Price
	md["baseAmount"] = amount

	return md, nil
}
