package domain

// CheckoutForm is the business-formation form posted by the storefront when
// the customer proceeds to payment.
type CheckoutForm struct {
	Email           string          `json:"email"`
	CompanyName     string          `json:"companyName"`
	FilingSpeed     string          `json:"filingSpeed"`
	SelectedPackage SelectedPackage `json:"selectedPackage"`
	Contact         Contact         `json:"Contact"`
	CompanyInfo     CompanyInfo     `json:"CompanyInfo"`
	BusinessAddress BusinessAddress `json:"BusinessAddress"`
	RegisteredAgent RegisteredAgent `json:"RegisterAgent"`
	Participants    []Participant   `json:"CompanyParticipants"`
}
