package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
)

const sheetName = "Business Orders"

type column struct {
	header string
	width  float64
	value  func(o *domain.Order) any
}

// columns flattens the nested order document into one spreadsheet row per
// order, mirroring the admin dashboard layout.
var columns = []column{
	{"Email", 28, func(o *domain.Order) any { return o.Contact.ContactEmail }},
	{"First Name", 18, func(o *domain.Order) any { return o.Contact.ContactFirstName }},
	{"Last Name", 18, func(o *domain.Order) any { return o.Contact.ContactLastName }},
	{"Phone", 18, func(o *domain.Order) any { return o.Contact.ContactPhone }},
	{"Evening Phone", 18, func(o *domain.Order) any { return o.Contact.ContactEveningPhone }},
	{"Desired Company Name", 28, func(o *domain.Order) any { return o.CompanyInfo.CompanyDesiredName }},
	{"Alternative Company Name", 28, func(o *domain.Order) any { return o.CompanyInfo.CompanyAlternativeName }},
	{"Business Category", 20, func(o *domain.Order) any { return o.CompanyInfo.CompanyBusinessCategory }},
	{"Business Description", 32, func(o *domain.Order) any { return o.CompanyInfo.CompanyBusinessDescription }},
	{"Country", 8, func(o *domain.Order) any { return o.BusinessAddress.Country }},
	{"Address Line 1", 24, func(o *domain.Order) any { return o.BusinessAddress.Address1 }},
	{"Address Line 2", 24, func(o *domain.Order) any { return o.BusinessAddress.Address2 }},
	{"City", 18, func(o *domain.Order) any { return o.BusinessAddress.City }},
	{"State", 8, func(o *domain.Order) any { return o.BusinessAddress.State }},
	{"ZIP Code", 10, func(o *domain.Order) any { return o.BusinessAddress.Zip }},
	{"Is CorpNet Agent?", 8, func(o *domain.Order) any { return o.RegisteredAgent.IsCorpnetAgent }},
	{"Agent First Name", 18, func(o *domain.Order) any { return o.RegisteredAgent.FirstName }},
	{"Agent Last Name", 18, func(o *domain.Order) any { return o.RegisteredAgent.LastName }},
	{"Agent Address Line 1", 24, func(o *domain.Order) any { return o.RegisteredAgent.Address1 }},
	{"Agent Address Line 2", 24, func(o *domain.Order) any { return o.RegisteredAgent.Address2 }},
	{"Agent City", 18, func(o *domain.Order) any { return o.RegisteredAgent.City }},
	{"Agent State", 8, func(o *domain.Order) any { return o.RegisteredAgent.State }},
	{"Agent ZIP Code", 10, func(o *domain.Order) any { return o.RegisteredAgent.Zip }},
	{"Agent Country", 8, func(o *domain.Order) any { return o.RegisteredAgent.Country }},
	{"Participants", 32, func(o *domain.Order) any { return participantSummary(o) }},
	{"Package ID", 18, func(o *domain.Order) any { return o.SelectedPackage.ID }},
	{"Package Name", 18, func(o *domain.Order) any { return o.SelectedPackage.Name }},
	{"Package Price", 12, func(o *domain.Order) any { return o.SelectedPackage.Price }},
	{"Package Total Price", 12, func(o *domain.Order) any { return o.SelectedPackage.TotalPrice }},
	{"Filing Speed", 14, func(o *domain.Order) any { return o.FilingSpeed }},
	{"Payment Status", 14, func(o *domain.Order) any { return o.PaymentStatus }},
	{"Payment Amount", 14, func(o *domain.Order) any { return o.PaymentAmount }},
	{"CorpNet Order ID", 18, func(o *domain.Order) any { return o.CorpnetOrderID }},
	{"Created At", 20, func(o *domain.Order) any { return o.CreatedAt.Format("2006-01-02") }},
	{"Created Time", 12, func(o *domain.Order) any { return o.CreatedAt.Format("15:04:05") }},
}

// WriteOrdersWorkbook streams an xlsx workbook with one row per order.
func WriteOrdersWorkbook(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}

		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col.header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, order := range orders {
		for i, col := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, col.value(&order)); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func participantSummary(o *domain.Order) string {
	if len(o.Participants) == 0 {
		return ""
	}
	summary := ""
	for i, p := range o.Participants {
		if i > 0 {
			summary += "; "
		}
		summary += p.FirstName + " " + p.LastName +
			" (" + strconv.FormatFloat(p.OwnershipPercentage, 'f', -1, 64) + "%)"
	}
	return summary
}
