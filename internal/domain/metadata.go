package domain

import (
	"encoding/json"
	"strconv"
)

// Metadata keys attached to the Stripe checkout session. Nested sections are
// JSON-encoded strings because Stripe metadata values are flat strings.
const (
	MetaContact         = "Contact"
	MetaCompanyInfo     = "CompanyInfo"
	MetaBusinessAddress = "BusinessAddress"
	MetaRegisterAgent   = "RegisterAgent"
	MetaParticipants    = "CompanyParticipants"
	MetaPackage         = "selectedPackage"
	MetaFilingSpeed     = "filingSpeed"
	MetaTotalAmount     = "totalAmount"
)

// MaterializeOrder reconstructs a typed order from the flat string-keyed
// session metadata. Missing or malformed sections fall back to zero values so
// a paid session can always be persisted, even with partial data.
func MaterializeOrder(md map[string]string) Order {
	var order Order

	unmarshalSection(md[MetaContact], &order.Contact)
	unmarshalSection(md[MetaCompanyInfo], &order.CompanyInfo)
	unmarshalSection(md[MetaBusinessAddress], &order.BusinessAddress)
	unmarshalSection(md[MetaRegisterAgent], &order.RegisteredAgent)

	order.Participants = []Participant{}
	unmarshalSection(md[MetaParticipants], &order.Participants)
	if order.Participants == nil {
		order.Participants = []Participant{}
	}

	order.SelectedPackage = materializePackage(md[MetaPackage])
	order.FilingSpeed = md[MetaFilingSpeed]

	if order.BusinessAddress.Country == "" {
		order.BusinessAddress.Country = "US"
	}

	return order
}

// TotalAmount parses the totalAmount metadata value, defaulting to zero.
func TotalAmount(md map[string]string) float64 {
	return coerceFloat(md[MetaTotalAmount])
}

func unmarshalSection(raw string, dst any) {
	if raw == "" {
		return
	}
	// Parse errors are swallowed on purpose; dst keeps its zero value.
	_ = json.Unmarshal([]byte(raw), dst)
}

// materializePackage tolerates the frontend sending id and price as either
// strings or numbers.
func materializePackage(raw string) SelectedPackage {
	var loose struct {
		ID         any `json:"id"`
		Name       any `json:"name"`
		Price      any `json:"price"`
		TotalPrice any `json:"totalPrice"`
	}
	if raw == "" || json.Unmarshal([]byte(raw), &loose) != nil {
		return SelectedPackage{}
	}
	return SelectedPackage{
		ID:         coerceString(loose.ID),
		Name:       coerceString(loose.Name),
		Price:      coerceString(loose.Price),
		TotalPrice: coerceFloatAny(loose.TotalPrice),
	}
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func coerceFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func coerceFloatAny(v any) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case string:
		return coerceFloat(f)
	default:
		return 0
	}
}
