package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
)

// OrderEmailData is the slice of an order that the customer-facing templates
// need.
type OrderEmailData struct {
	Contact         domain.Contact
	CompanyInfo     domain.CompanyInfo
	SelectedPackage domain.SelectedPackage
	FilingSpeed     string
}

type templateContext struct {
	OrderEmailData
	LogoURL       string
	StatusMessage template.HTML
	Year          int
}

const confirmationTmpl = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Business Formation Confirmation</title></head>
<body style="font-family:Arial,sans-serif;color:#333;max-width:600px;margin:0 auto;padding:20px;">
  <div style="background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);color:white;padding:30px;text-align:center;border-radius:10px 10px 0 0;">
    <img src="{{.LogoURL}}" alt="LaunchMyBiz Logo" style="max-width:200px;height:auto;margin-bottom:15px;">
    <h1>Business Formation Confirmation</h1>
    <p>Your LLC formation order has been successfully submitted!</p>
  </div>
  <div style="background:#f9f9f9;padding:30px;border-radius:0 0 10px 10px;">
    <div style="text-align:center;">
      <h2>Thank you for choosing LaunchMyBiz!</h2>
      <p>We're excited to help you start your business journey. Your order has been received and is being processed.</p>
    </div>
    <div style="background:white;padding:20px;border-radius:8px;margin:20px 0;border-left:4px solid #667eea;">
      <h3>Package Details</h3>
      <p><strong>Package:</strong> {{.SelectedPackage.Name}}</p>
      <p><strong>Filing Speed:</strong> {{.FilingSpeed}}</p>
      <p><strong>Total Amount:</strong> ${{printf "%.2f" .SelectedPackage.TotalPrice}}</p>
    </div>
    <div style="background:white;padding:20px;border-radius:8px;margin:20px 0;border-left:4px solid #28a745;">
      <h3>Contact Information</h3>
      <p><strong>Name:</strong> {{.Contact.ContactFirstName}} {{.Contact.ContactLastName}}</p>
      <p><strong>Email:</strong> {{.Contact.ContactEmail}}</p>
      <p><strong>Phone:</strong> {{.Contact.ContactPhone}}</p>
    </div>
    <div style="background:white;padding:20px;border-radius:8px;margin:20px 0;border-left:4px solid #28a745;">
      <h3>Company Information</h3>
      <p><strong>Company Name:</strong> {{.CompanyInfo.CompanyDesiredName}}</p>
      <p><strong>Business Category:</strong> {{.CompanyInfo.CompanyBusinessCategory}}</p>
      <p><strong>Business Description:</strong> {{.CompanyInfo.CompanyBusinessDescription}}</p>
    </div>
    <div style="background:#e8f4fd;padding:20px;border-radius:8px;margin:20px 0;">
      <h3>What Happens Next?</h3>
      <ol>
        <li><strong>Order Processing:</strong> Our team will review your application within 24-48 hours</li>
        <li><strong>Document Preparation:</strong> We'll prepare all necessary formation documents</li>
        <li><strong>State Filing:</strong> Your LLC will be filed with the state authorities</li>
        <li><strong>Confirmation:</strong> You'll receive your formation documents and EIN</li>
      </ol>
    </div>
  </div>
  <div style="text-align:center;margin-top:30px;padding-top:20px;border-top:1px solid #ddd;color:#666;">
    <p><strong>LaunchMyBiz</strong> - Your trusted partner in business formation</p>
    <p>Email: support@launchmybiz.net</p>
    <p>This is an automated message, please do not reply directly to this email.</p>
  </div>
</body>
</html>`

const adminAlertTmpl = `<html><body>
  <div style="text-align:center;">
    <img src="{{.LogoURL}}" alt="LaunchMyBiz Logo" style="max-width:180px;margin-bottom:20px;" />
  </div>
  <h2>New Order Alert</h2>
  <p>A new LLC formation order has been created. Here are the details:</p>
  <ul>
    <li><strong>Company Name:</strong> {{.CompanyInfo.CompanyDesiredName}}</li>
    <li><strong>Contact:</strong> {{.Contact.ContactFirstName}} {{.Contact.ContactLastName}} ({{.Contact.ContactEmail}})</li>
    <li><strong>Phone:</strong> {{.Contact.ContactPhone}}</li>
    <li><strong>Package:</strong> {{.SelectedPackage.Name}} (${{printf "%.2f" .SelectedPackage.TotalPrice}})</li>
    <li><strong>Filing Speed:</strong> {{.FilingSpeed}}</li>
  </ul>
  <p>Check the admin panel for more details.</p>
  <div style="text-align:center;margin-top:30px;color:#888;font-size:12px;">LaunchMyBiz &copy; {{.Year}}</div>
</body></html>`

const statusUpdateTmpl = `<html><body>
  <div style="text-align:center;">
    <img src="{{.LogoURL}}" alt="LaunchMyBiz Logo" style="max-width:180px;margin-bottom:20px;" />
  </div>
  <h2 style="text-align:center;">Order Status Update</h2>
  {{.StatusMessage}}
  <div style="margin:20px 0;">
    <strong>Company Name:</strong> {{.CompanyInfo.CompanyDesiredName}}<br/>
    <strong>Contact:</strong> {{.Contact.ContactFirstName}} {{.Contact.ContactLastName}} ({{.Contact.ContactEmail}})
  </div>
  <p>If you have any questions, please contact us at <a href="mailto:support@launchmybiz.net">support@launchmybiz.net</a>.</p>
  <div style="text-align:center;margin-top:30px;color:#888;font-size:12px;">LaunchMyBiz &copy; {{.Year}}</div>
</body></html>`

var templates = template.Must(template.New("confirmation").Parse(confirmationTmpl))

func init() {
	template.Must(templates.New("adminAlert").Parse(adminAlertTmpl))
	template.Must(templates.New("statusUpdate").Parse(statusUpdateTmpl))
}

func render(name, logoURL string, data OrderEmailData, statusMessage template.HTML) (string, error) {
	var buf bytes.Buffer
	ctx := templateContext{
		OrderEmailData: data,
		LogoURL:        logoURL,
		StatusMessage:  statusMessage,
		Year:           time.Now().Year(),
	}
	if err := templates.ExecuteTemplate(&buf, name, ctx); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// statusLine maps an order status to the subject and body lead of the status
// update email.
func statusLine(status string) (subject string, message template.HTML) {
	switch status {
	case "approved":
		return "Your LLC Formation Order is Approved!",
			`<p style="color:green"><strong>Congratulations!</strong> Your order has been <b>approved</b>. We will proceed with the next steps and keep you updated.</p>`
	case "rejected":
		return "Your LLC Formation Order was Rejected",
			`<p style="color:red"><strong>We regret to inform you that your order was <b>rejected</b>.</strong> Please contact support for more information.</p>`
	case "paid":
		return "Payment Received for Your LLC Formation Order",
			`<p style="color:blue"><strong>Thank you!</strong> We have received your payment. Your order is now being processed.</p>`
	case "pending":
		return "Your LLC Formation Order is Pending",
			`<p style="color:orange"><strong>Your order is currently <b>pending</b>.</strong> We will notify you once there is an update.</p>`
	default:
		return "Order Status Update",
			template.HTML(fmt.Sprintf("<p>Your order status has been updated to: <b>%s</b>.</p>", template.HTMLEscapeString(status)))
	}
}
