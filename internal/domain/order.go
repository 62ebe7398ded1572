package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is the primary contact for a formation order.
type Contact struct {
	ContactEmail        string `bson:"contact_email" json:"ContactEmail"`
	ContactFirstName    string `bson:"contact_first_name" json:"ContactFirstName"`
	ContactLastName     string `bson:"contact_last_name" json:"ContactLastName"`
	ContactPhone        string `bson:"contact_phone" json:"ContactPhone"`
	ContactEveningPhone string `bson:"contact_evening_phone,omitempty" json:"ContactEveningPhone,omitempty"`
}

type CompanyInfo struct {
	CompanyDesiredName         string `bson:"company_desired_name" json:"CompanyDesiredName"`
	CompanyAlternativeName     string `bson:"company_alternative_name,omitempty" json:"CompanyAlternativeName,omitempty"`
	CompanyBusinessCategory    string `bson:"company_business_category" json:"CompanyBusinessCategory"`
	CompanyBusinessDescription string `bson:"company_business_description" json:"CompanyBusinessDescription"`
	SocialNumber               string `bson:"social_number,omitempty" json:"socialNumber,omitempty"`
}

type BusinessAddress struct {
	Country  string `bson:"country" json:"BusinessAddressCountry"`
	Address1 string `bson:"address1" json:"BusinessAddressAddress1"`
	Address2 string `bson:"address2,omitempty" json:"BusinessAddressAddress2,omitempty"`
	City     string `bson:"city" json:"BusinessAddressCity"`
	State    string `bson:"state" json:"BusinessAddressState"`
	Zip      string `bson:"zip" json:"BusinessAddressZip"`
}

type RegisteredAgent struct {
	IsCorpnetAgent bool   `bson:"is_corpnet_agent" json:"RegisteredAgentIsCorpnetAgent"`
	FirstName      string `bson:"first_name,omitempty" json:"RegisteredAgentFirstName,omitempty"`
	LastName       string `bson:"last_name,omitempty" json:"RegisteredAgentLastName,omitempty"`
	Address1       string `bson:"address1,omitempty" json:"RegisteredAgentAddress1,omitempty"`
	Address2       string `bson:"address2,omitempty" json:"RegisteredAgentAddress2,omitempty"`
	City           string `bson:"city,omitempty" json:"RegisteredAgentCity,omitempty"`
	State          string `bson:"state,omitempty" json:"RegisteredAgentState,omitempty"`
	Zip            string `bson:"zip,omitempty" json:"RegisteredAgentZip,omitempty"`
	Country        string `bson:"country,omitempty" json:"RegisteredAgentCountry,omitempty"`
}

type MailingAddress struct {
	Address1 string `bson:"address1,omitempty" json:"Address1,omitempty"`
	Address2 string `bson:"address2,omitempty" json:"Address2,omitempty"`
	City     string `bson:"city,omitempty" json:"City,omitempty"`
	State    string `bson:"state,omitempty" json:"State,omitempty"`
	Zip      string `bson:"zip,omitempty" json:"Zip,omitempty"`
	Country  string `bson:"country,omitempty" json:"Country,omitempty"`
}

// Participant is a member, manager or officer of the company being formed.
type Participant struct {
	Type                string         `bson:"type" json:"Type"`
	FirstName           string         `bson:"first_name" json:"FirstName"`
	MiddleInitial       string         `bson:"middle_initial,omitempty" json:"MiddleInitial,omitempty"`
	LastName            string         `bson:"last_name" json:"LastName"`
	Titles              []string       `bson:"titles,omitempty" json:"Titles,omitempty"`
	MailingAddress      MailingAddress `bson:"mailing_address,omitempty" json:"MailingAddress,omitempty"`
	OwnershipPercentage float64        `bson:"ownership_percentage" json:"OwnershipPercentage"`
	IsAuthorizedSigner  bool           `bson:"is_authorized_signer" json:"IsAuthorizedSigner"`
	SocialNumber        string         `bson:"social_number,omitempty" json:"socialNumber,omitempty"`
}

type SelectedPackage struct {
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Price      string  `bson:"price" json:"price"`
	TotalPrice float64 `bson:"total_price" json:"totalPrice"`
}

// Order is the durable record of one paid formation order. There is at most
// one Order per Stripe checkout session id, enforced by a unique index.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Contact          Contact            `bson:"contact" json:"Contact"`
	CompanyInfo      CompanyInfo        `bson:"company_info" json:"CompanyInfo"`
	BusinessAddress  BusinessAddress    `bson:"business_address" json:"BusinessAddress"`
	RegisteredAgent  RegisteredAgent    `bson:"registered_agent" json:"RegisterAgent"`
	Participants     []Participant      `bson:"participants" json:"CompanyParticipants"`
	SelectedPackage  SelectedPackage    `bson:"selected_package" json:"selectedPackage"`
	FilingSpeed      string             `bson:"filing_speed" json:"filingSpeed"`
	StripeCheckoutID string             `bson:"stripe_checkout_id" json:"stripeCheckoutId"`
	PaymentStatus    string             `bson:"payment_status" json:"paymentStatus"`
	PaymentAmount    float64            `bson:"payment_amount" json:"paymentAmount"`
	CorpnetOrderID   string             `bson:"corpnet_order_id,omitempty" json:"corpnetOrderId,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
