package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/analytics"
	"vendorhub/internal/model"
)

// SubscriptionCreateDTO is the body for creating a subscription.
// Dates are YYYY-MM-DD.
type SubscriptionCreateDTO struct {
	VendorID        string          `json:"vendor_id" validate:"required"`
	Name            string          `json:"name" validate:"required,max=200"`
	Description     *string         `json:"description,omitempty"`
	Cost            decimal.Decimal `json:"cost" swaggertype:"string" example:"80.00"`
	BillingCycle    string          `json:"billing_cycle" validate:"required,oneof=monthly quarterly yearly"`
	Currency        string          `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	StartDate       string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	NextRenewalDate *string         `json:"next_renewal_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status          string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive trial cancelled expired"`
	UserSeats       *int            `json:"user_seats,omitempty" validate:"omitempty,gt=0"`
	AutoRenew       *bool           `json:"auto_renew,omitempty"`
	Team            *string         `json:"team,omitempty"`
	InternalContact *string         `json:"internal_contact,omitempty"`
	ContractURL     *string         `json:"contract_url,omitempty" validate:"omitempty,url"`
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := analytics.ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *s, err)
	}
	return &d, nil
}

// ToModel converts the request to a subscription.
func (d SubscriptionCreateDTO) ToModel() (*model.Subscription, error) {
	start, err := analytics.ParseDate(d.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	next, err := parseOptionalDate(d.NextRenewalDate)
	if err != nil {
		return nil, err
	}
	return &model.Subscription{
		VendorID:        d.VendorID,
		Name:            d.Name,
		Description:     d.Description,
		Cost:            d.Cost,
		BillingCycle:    model.BillingCycle(d.BillingCycle),
		Currency:        d.Currency,
		StartDate:       start,
		NextRenewalDate: next,
		Status:          model.SubscriptionStatus(d.Status),
		UserSeats:       d.UserSeats,
		AutoRenew:       d.AutoRenew,
		Team:            d.Team,
		InternalContact: d.InternalContact,
		ContractURL:     d.ContractURL,
	}, nil
}

// SubscriptionUpdateDTO is a partial update. Omitted fields are unchanged.
type SubscriptionUpdateDTO struct {
	VendorID        *string          `json:"vendor_id,omitempty"`
	Name            *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Description     *string          `json:"description,omitempty"`
	Cost            *decimal.Decimal `json:"cost,omitempty" swaggertype:"string"`
	BillingCycle    *string          `json:"billing_cycle,omitempty" validate:"omitempty,oneof=monthly quarterly yearly"`
	Currency        *string          `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	StartDate       *string          `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NextRenewalDate *string          `json:"next_renewal_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive trial cancelled expired"`
	UserSeats       *int             `json:"user_seats,omitempty" validate:"omitempty,gt=0"`
	AutoRenew       *bool            `json:"auto_renew,omitempty"`
	Team            *string          `json:"team,omitempty"`
	InternalContact *string          `json:"internal_contact,omitempty"`
	ContractURL     *string          `json:"contract_url,omitempty" validate:"omitempty,url"`
}

// ToPatch converts the request to a subscription patch.
func (d SubscriptionUpdateDTO) ToPatch() (model.SubscriptionPatch, error) {
	start, err := parseOptionalDate(d.StartDate)
	if err != nil {
		return model.SubscriptionPatch{}, err
	}
	next, err := parseOptionalDate(d.NextRenewalDate)
	if err != nil {
		return model.SubscriptionPatch{}, err
	}
	p := model.SubscriptionPatch{
		VendorID:        d.VendorID,
		Name:            d.Name,
		Description:     d.Description,
		Cost:            d.Cost,
		Currency:        d.Currency,
		StartDate:       start,
		NextRenewalDate: next,
		UserSeats:       d.UserSeats,
		AutoRenew:       d.AutoRenew,
		Team:            d.Team,
		InternalContact: d.InternalContact,
		ContractURL:     d.ContractURL,
	}
	if d.BillingCycle != nil {
		c := model.BillingCycle(*d.BillingCycle)
		p.BillingCycle = &c
	}
	if d.Status != nil {
		s := model.SubscriptionStatus(*d.Status)
		p.Status = &s
	}
	return p, nil
}

// BulkUpdateDTO applies one patch to many subscriptions.
type BulkUpdateDTO struct {
	IDs     []string              `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Updates SubscriptionUpdateDTO `json:"updates"`
}

// BulkUpdateResponseDTO reports how many rows changed.
type BulkUpdateResponseDTO struct {
	Updated int64 `json:"updated"`
}

// RenewDTO renews a subscription, optionally at a new price or date.
type RenewDTO struct {
	NewCost        *decimal.Decimal `json:"new_cost,omitempty" swaggertype:"string"`
	NewRenewalDate *string          `json:"new_renewal_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CancelDTO cancels a subscription.
type CancelDTO struct {
	EffectiveDate *string `json:"effective_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReactivateDTO reactivates a cancelled subscription.
type ReactivateDTO struct {
	NextRenewalDate string `json:"next_renewal_date" validate:"required,datetime=2006-01-02"`
}

// SubscriptionResponseDTO is an enhanced subscription with dates rendered as YYYY-MM-DD.
type SubscriptionResponseDTO struct {
	ID               string          `json:"id"`
	VendorID         string          `json:"vendor_id"`
	VendorName       *string         `json:"vendor_name,omitempty"`
	Name             string          `json:"name"`
	Description      *string         `json:"description,omitempty"`
	Cost             decimal.Decimal `json:"cost" swaggertype:"string"`
	BillingCycle     string          `json:"billing_cycle"`
	Currency         string          `json:"currency"`
	StartDate        string          `json:"start_date"`
	NextRenewalDate  *string         `json:"next_renewal_date"`
	Status           string          `json:"status"`
	UserSeats        *int            `json:"user_seats,omitempty"`
	AutoRenew        bool            `json:"auto_renew"`
	Team             *string         `json:"team,omitempty"`
	InternalContact  *string         `json:"internal_contact,omitempty"`
	ContractURL      *string         `json:"contract_url,omitempty"`
	DaysUntilRenewal *int            `json:"days_until_renewal"`
	MonthlyCost      decimal.Decimal `json:"monthly_cost" swaggertype:"string"`
	YearlyCost       decimal.Decimal `json:"yearly_cost" swaggertype:"string"`
	CostPerSeat      decimal.Decimal `json:"cost_per_seat" swaggertype:"string"`
	RenewalUrgency   string          `json:"renewal_urgency"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewSubscriptionResponse renders e.
func NewSubscriptionResponse(e analytics.EnhancedSubscription) SubscriptionResponseDTO {
	resp := SubscriptionResponseDTO{
		ID:               e.ID,
		VendorID:         e.VendorID,
		VendorName:       e.VendorName,
		Name:             e.Name,
		Description:      e.Description,
		Cost:             e.Cost,
		BillingCycle:     string(e.BillingCycle),
		Currency:         e.Currency,
		StartDate:        analytics.FormatDate(e.StartDate),
		Status:           string(e.Status),
		UserSeats:        e.UserSeats,
		AutoRenew:        e.AutoRenew != nil && *e.AutoRenew,
		Team:             e.Team,
		InternalContact:  e.InternalContact,
		ContractURL:      e.ContractURL,
		DaysUntilRenewal: e.DaysUntilRenewal,
		MonthlyCost:      e.MonthlyCost,
		YearlyCost:       e.YearlyCost,
		CostPerSeat:      e.CostPerSeat,
		RenewalUrgency:   string(e.RenewalUrgency),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.NextRenewalDate != nil {
		next := analytics.FormatDate(*e.NextRenewalDate)
		resp.NextRenewalDate = &next
	}
	return resp
}

// NewSubscriptionResponses renders subs; the result is never nil.
func NewSubscriptionResponses(subs []analytics.EnhancedSubscription) []SubscriptionResponseDTO {
	out := make([]SubscriptionResponseDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, NewSubscriptionResponse(s))
	}
	return out
}

// RenewalAlertDTO is a renewal alert with its date rendered as YYYY-MM-DD.
type RenewalAlertDTO struct {
	SubscriptionID   string          `json:"subscription_id"`
	SubscriptionName string          `json:"subscription_name"`
	VendorName       string          `json:"vendor_name"`
	Cost             decimal.Decimal `json:"cost" swaggertype:"string"`
	Currency         string          `json:"currency"`
	RenewalDate      string          `json:"renewal_date"`
	DaysUntilRenewal int             `json:"days_until_renewal"`
	Urgency          string          `json:"urgency"`
	AutoRenew        bool            `json:"auto_renew"`
}

// NewRenewalAlerts renders alerts; the result is never nil.
func NewRenewalAlerts(alerts []analytics.RenewalAlert) []RenewalAlertDTO {
	out := make([]RenewalAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, RenewalAlertDTO{
			SubscriptionID:   a.SubscriptionID,
			SubscriptionName: a.SubscriptionName,
			VendorName:       a.VendorName,
			Cost:             a.Cost,
			Currency:         a.Currency,
			RenewalDate:      analytics.FormatDate(a.RenewalDate),
			DaysUntilRenewal: a.DaysUntilRenewal,
			Urgency:          string(a.Urgency),
			AutoRenew:        a.AutoRenew,
		})
	}
	return out
}
