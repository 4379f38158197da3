package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kopsha/micro-invoicer/internal/domain/billing"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
)

// FiscalEntityPayload carries the full legal identity of a party.
type FiscalEntityPayload struct {
	Name           string `json:"name"`
	OwnerFullname  string `json:"owner_fullname"`
	RegistrationID string `json:"registration_id"`
	FiscalCode     string `json:"fiscal_code"`
	Address        string `json:"address"`
	Country        string `json:"country"`
	BankAccount    string `json:"bank_account"`
	BankName       string `json:"bank_name"`
}

// ToEntity converts the payload into a domain entity (without ID).
func (p FiscalEntityPayload) ToEntity() *entity.FiscalEntity {
	return &entity.FiscalEntity{
		Name:           p.Name,
		OwnerFullname:  p.OwnerFullname,
		RegistrationID: p.RegistrationID,
		FiscalCode:     p.FiscalCode,
		Address:        p.Address,
		Country:        p.Country,
		BankAccount:    p.BankAccount,
		BankName:       p.BankName,
	}
}

// FiscalEntityResponse mirrors FiscalEntityPayload with the persisted ID.
type FiscalEntityResponse struct {
	ID string `json:"id"`
	FiscalEntityPayload
}

// NewFiscalEntityResponse maps a domain entity into its response shape.
func NewFiscalEntityResponse(fe *entity.FiscalEntity) FiscalEntityResponse {
	return FiscalEntityResponse{
		ID: fe.ID,
		FiscalEntityPayload: FiscalEntityPayload{
			Name:           fe.Name,
			OwnerFullname:  fe.OwnerFullname,
			RegistrationID: fe.RegistrationID,
			FiscalCode:     fe.FiscalCode,
			Address:        fe.Address,
			Country:        fe.Country,
			BankAccount:    fe.BankAccount,
			BankName:       fe.BankName,
		},
	}
}

// CreateRegistryRequest opens a new invoice registry for a seller.
type CreateRegistryRequest struct {
	DisplayName   string              `json:"display_name"`
	InvoiceSeries string              `json:"invoice_series"`
	NextNumber    int                 `json:"next_number"`
	IncludeVAT    int                 `json:"include_vat"`
	Seller        FiscalEntityPayload `json:"seller"`
}

// UpdateRegistryRequest changes the registry presentation and the default VAT
// applied to future invoices. Series and counter stay immutable.
type UpdateRegistryRequest struct {
	DisplayName string `json:"display_name"`
	IncludeVAT  int    `json:"include_vat"`
}

// RegistryResponse describes a registry and its current counter state.
type RegistryResponse struct {
	ID            string               `json:"id"`
	DisplayName   string               `json:"display_name"`
	InvoiceSeries string               `json:"invoice_series"`
	NextNumber    int                  `json:"next_number"`
	IncludeVAT    int                  `json:"include_vat"`
	Seller        FiscalEntityResponse `json:"seller"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewRegistryResponse maps a registry and its seller into the response shape.
func NewRegistryResponse(r *entity.Registry, seller *entity.FiscalEntity) RegistryResponse {
	return RegistryResponse{
		ID:            r.ID,
		DisplayName:   r.DisplayName,
		InvoiceSeries: r.InvoiceSeries,
		NextNumber:    r.NextNumber,
		IncludeVAT:    r.IncludeVAT,
		Seller:        NewFiscalEntityResponse(seller),
		CreatedAt:     r.CreatedAt,
	}
}

// CreateContractRequest registers a service agreement under a registry.
type CreateContractRequest struct {
	Buyer                FiscalEntityPayload `json:"buyer"`
	RegistrationNo       string              `json:"registration_no"`
	RegistrationDate     time.Time           `json:"registration_date"`
	Currency             string              `json:"currency"`
	Unit                 string              `json:"unit"`
	UnitRate             decimal.Decimal     `json:"unit_rate"`
	InvoicingCurrency    string              `json:"invoicing_currency"`
	InvoicingDescription string              `json:"invoicing_description"`
}

// ContractResponse describes a stored service contract.
type ContractResponse struct {
	ID                   string               `json:"id"`
	RegistryID           string               `json:"registry_id"`
	Buyer                FiscalEntityResponse `json:"buyer"`
	RegistrationNo       string               `json:"registration_no"`
	RegistrationDate     time.Time            `json:"registration_date"`
	Currency             string               `json:"currency"`
	Unit                 string               `json:"unit"`
	UnitRate             decimal.Decimal      `json:"unit_rate"`
	InvoicingCurrency    string               `json:"invoicing_currency"`
	InvoicingDescription string               `json:"invoicing_description"`
	CreatedAt            time.Time            `json:"created_at"`
}

// NewContractResponse maps a contract and its buyer into the response shape.
func NewContractResponse(c *entity.ServiceContract, buyer *entity.FiscalEntity) ContractResponse {
	return ContractResponse{
		ID:                   c.ID,
		RegistryID:           c.RegistryID,
		Buyer:                NewFiscalEntityResponse(buyer),
		RegistrationNo:       c.RegistrationNo,
		RegistrationDate:     c.RegistrationDate,
		Currency:             c.Currency,
		Unit:                 c.Unit,
		UnitRate:             c.UnitRate,
		InvoicingCurrency:    c.InvoicingCurrency,
		InvoicingDescription: c.InvoicingDescription,
		CreatedAt:            c.CreatedAt,
	}
}

// IssueInvoiceRequest publishes the next invoice of a registry against one of
// its contracts. Quantity is expressed in the contract's billing unit.
type IssueInvoiceRequest struct {
	ContractID          string              `json:"contract_id"`
	IssueDate           time.Time           `json:"issue_date"`
	Quantity            decimal.Decimal     `json:"quantity"`
	ConversionRate      decimal.NullDecimal `json:"conversion_rate"`
	AttachedCost        decimal.NullDecimal `json:"attached_cost"`
	AttachedDescription string              `json:"attached_description"`
	// OverrideDescription replaces the contract's template when non-empty.
	OverrideDescription string `json:"override_description"`
}

// ValuationResponse exposes the computed monetary breakdown.
type ValuationResponse struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
	TimeValue decimal.Decimal `json:"time_value"`
	VATValue  decimal.Decimal `json:"vat_value"`
	Total     decimal.Decimal `json:"total"`
}

// NewValuationResponse maps a domain valuation into its response shape.
func NewValuationResponse(v billing.Valuation) ValuationResponse {
	return ValuationResponse{
		UnitPrice: v.UnitPrice,
		TimeValue: v.TimeValue,
		VATValue:  v.VATValue,
		Total:     v.Total,
	}
}

// InvoiceResponse describes a stored invoice plus its valuation.
type InvoiceResponse struct {
	ID                  string              `json:"id"`
	RegistryID          string              `json:"registry_id"`
	ContractID          string              `json:"contract_id"`
	SeriesNumber        string              `json:"series_number"`
	Status              string              `json:"status"`
	Description         string              `json:"description"`
	Currency            string              `json:"currency"`
	ConversionRate      decimal.NullDecimal `json:"conversion_rate"`
	Unit                string              `json:"unit"`
	UnitRate            decimal.Decimal     `json:"unit_rate"`
	Quantity            decimal.Decimal     `json:"quantity"`
	IncludeVAT          int                 `json:"include_vat"`
	AttachedCost        decimal.NullDecimal `json:"attached_cost"`
	AttachedDescription string              `json:"attached_description,omitempty"`
	IssueDate           time.Time           `json:"issue_date"`
	Valuation           ValuationResponse   `json:"valuation"`
}

// NewInvoiceResponse maps an invoice and its valuation into the response shape.
func NewInvoiceResponse(inv *entity.TimeInvoice, v billing.Valuation) InvoiceResponse {
	return InvoiceResponse{
		ID:                  inv.ID,
		RegistryID:          inv.RegistryID,
		ContractID:          inv.ContractID,
		SeriesNumber:        inv.SeriesNumber(),
		Status:              inv.Status.String(),
		Description:         inv.Description,
		Currency:            inv.Currency,
		ConversionRate:      inv.ConversionRate,
		Unit:                inv.Unit,
		UnitRate:            inv.UnitRate,
		Quantity:            inv.Quantity,
		IncludeVAT:          inv.IncludeVAT,
		AttachedCost:        inv.AttachedCost,
		AttachedDescription: inv.AttachedDescription,
		IssueDate:           inv.IssueDate,
		Valuation:           NewValuationResponse(v),
	}
}

// RevenuePeriod is one aggregated bucket of the revenue report.
type RevenuePeriod struct {
	Period   string          `json:"period"` // "2026-03" or "2026-Q1"
	Invoices int             `json:"invoices"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// RevenueReportResponse sums published invoices into a single currency.
type RevenueReportResponse struct {
	Currency  string          `json:"currency"`
	Monthly   []RevenuePeriod `json:"monthly"`
	Quarterly []RevenuePeriod `json:"quarterly"`
}
