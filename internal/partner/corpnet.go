package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
)

var ErrPartnerUnavailable = errors.New("corpnet api unavailable")

// Config carries the CorpNet credentials and fixed order identifiers.
type Config struct {
	BaseURL    string
	APIKey     string
	APIUserPid string
	PCID       string
	ProductID  string
	Timeout    time.Duration
}

// Client submits formation orders to CorpNet and looks up package quotes.
// Both operations sit behind circuit breakers so a partner outage cannot tie
// up webhook deliveries.
type Client struct {
	cfg     Config
	httpc   *http.Client
	orderCB *gobreaker.CircuitBreaker[string]
	quoteCB *gobreaker.CircuitBreaker[json.RawMessage]
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}

	settings := gobreaker.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	orderSettings := settings
	orderSettings.Name = "corpnet-create-order"
	quoteSettings := settings
	quoteSettings.Name = "corpnet-package-quote"

	return &Client{
		cfg:     cfg,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		orderCB: gobreaker.NewCircuitBreaker[string](orderSettings),
		quoteCB: gobreaker.NewCircuitBreaker[json.RawMessage](quoteSettings),
	}
}

type orderContact struct {
	ContactEmail        string `json:"contactEmail"`
	ContactFirstName    string `json:"contactFirstName"`
	ContactLastName     string `json:"contactLastName"`
	ContactPhone        string `json:"contactPhone"`
	ContactEveningPhone string `json:"contactEveningPhone"`
}

type orderCompanyInfo struct {
	CompanyDesiredName         string `json:"companyDesiredName"`
	CompanyAlternativeName     string `json:"companyAlternativeName"`
	CompanyBusinessCategory    string `json:"companyBusinessCategory"`
	CompanyBusinessDescription string `json:"companyBusinessDescription"`
}

type orderBusinessAddress struct {
	Country  string `json:"businessAddressCountry"`
	Address1 string `json:"businessAddressAddress1"`
	Address2 string `json:"businessAddressAddress2"`
	City     string `json:"businessAddressCity"`
	State    string `json:"businessAddressState"`
	Zip      string `json:"businessAddressZip"`
}

type orderRegisterAgent struct {
	IsCorpnetAgent bool   `json:"registeredAgentIsCorpnetAgent"`
	FirstName      string `json:"registeredAgentFirstName"`
	LastName       string `json:"registeredAgentLastName"`
	Address1       string `json:"registeredAgentAddress1"`
	Address2       string `json:"registeredAgentAddress2"`
	City           string `json:"registeredAgentCity"`
	State          string `json:"registeredAgentState"`
	Zip            string `json:"registeredAgentZip"`
	Country        string `json:"registeredAgentCountry"`
}

type orderProduct struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

type partnerOrder struct {
	Contact              orderContact         `json:"contact"`
	CompanyInfo          orderCompanyInfo     `json:"companyInfo"`
	BusinessAddress      orderBusinessAddress `json:"businessAddress"`
	RegisterAgent        orderRegisterAgent   `json:"registerAgent"`
	APIUserPid           string               `json:"apiUserPid"`
	PCID                 string               `json:"pcid"`
	BusinessStructure    string               `json:"businessStructureType"`
	BusinessStateInitial string               `json:"businessStateInitial"`
	OrderTotalPrice      float64              `json:"orderTotalPrice"`
	PackageID            string               `json:"packageId"`
	Products             []orderProduct       `json:"products"`
}

type createOrderRequest struct {
	PartnerOrder partnerOrder `json:"partnerOrder"`
}

// CreateOrder submits a persisted order for fulfillment and returns the
// partner-assigned order id.
func (c *Client) CreateOrder(ctx context.Context, order *domain.Order, totalAmount float64) (string, error) {
	agentCountry := order.RegisteredAgent.Country
	if agentCountry == "" {
		agentCountry = "US"
	}

	req := createOrderRequest{
		PartnerOrder: partnerOrder{
			Contact: orderContact{
				ContactEmail:        order.Contact.ContactEmail,
				ContactFirstName:    order.Contact.ContactFirstName,
				ContactLastName:     order.Contact.ContactLastName,
				ContactPhone:        order.Contact.ContactPhone,
				ContactEveningPhone: order.Contact.ContactEveningPhone,
			},
			CompanyInfo: orderCompanyInfo{
				CompanyDesiredName:         order.CompanyInfo.CompanyDesiredName,
				CompanyAlternativeName:     order.CompanyInfo.CompanyAlternativeName,
				CompanyBusinessCategory:    order.CompanyInfo.CompanyBusinessCategory,
				CompanyBusinessDescription: order.CompanyInfo.CompanyBusinessDescription,
			},
			BusinessAddress: orderBusinessAddress{
				Country:  order.BusinessAddress.Country,
				Address1: order.BusinessAddress.Address1,
				Address2: order.BusinessAddress.Address2,
				City:     order.BusinessAddress.City,
				State:    order.BusinessAddress.State,
				Zip:      order.BusinessAddress.Zip,
			},
			RegisterAgent: orderRegisterAgent{
				IsCorpnetAgent: order.RegisteredAgent.IsCorpnetAgent,
				FirstName:      order.RegisteredAgent.FirstName,
				LastName:       order.RegisteredAgent.LastName,
				Address1:       order.RegisteredAgent.Address1,
				Address2:       order.RegisteredAgent.Address2,
				City:           order.RegisteredAgent.City,
				State:          order.RegisteredAgent.State,
				Zip:            order.RegisteredAgent.Zip,
				Country:        agentCountry,
			},
			APIUserPid:           c.cfg.APIUserPid,
			PCID:                 c.cfg.PCID,
			BusinessStructure:    "LLC",
			BusinessStateInitial: order.BusinessAddress.State,
			OrderTotalPrice:      totalAmount,
			PackageID:            order.SelectedPackage.ID,
			Products: []orderProduct{
				{ProductID: c.cfg.ProductID, Quantity: "1"},
			},
		},
	}

	return c.orderCB.Execute(func() (string, error) {
		return c.postOrder(ctx, req)
	})
}

func (c *Client) postOrder(ctx context.Context, reqBody createOrderRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode partner order: %w", err)
	}

	endpoint := c.cfg.BaseURL + "/api/business-formation/v2/create-order"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build partner request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPartnerUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read partner response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("partner order rejected: status %d: %s", resp.StatusCode, data)
	}

	var decoded struct {
		OrderID any `json:"orderId"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode partner response: %w", err)
	}

	orderID := stringifyID(decoded.OrderID)
	if orderID == "" {
		return "", fmt.Errorf("partner response missing orderId: %s", data)
	}
	return orderID, nil
}

// GetPackage fetches a formation package quote for the given entity type,
// state and filing speed. The raw partner payload is returned untouched.
func (c *Client) GetPackage(ctx context.Context, entityType, state, filing string) (json.RawMessage, error) {
	return c.quoteCB.Execute(func() (json.RawMessage, error) {
		query := url.Values{}
		query.Set("entityType", entityType)
		query.Set("state", state)
		query.Set("filing", filing)

		endpoint := c.cfg.BaseURL + "/api/business-formation/package?" + query.Encode()
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build quote request: %w", err)
		}
		c.setHeaders(httpReq)

		resp, err := c.httpc.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPartnerUnavailable, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read quote response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("quote lookup failed: status %d: %s", resp.StatusCode, data)
		}

		return json.RawMessage(data), nil
	})
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
}

func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}
