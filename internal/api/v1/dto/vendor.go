package dto

import "vendorhub/internal/model"

// VendorDTO is the body for creating or replacing a vendor.
type VendorDTO struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	CategoryID   *string `json:"category_id,omitempty"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive trial"`
	Description  *string `json:"description,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// ToModel converts the request to a vendor.
func (d VendorDTO) ToModel() *model.Vendor {
	return &model.Vendor{
		Name:         d.Name,
		Website:      d.Website,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		CategoryID:   d.CategoryID,
		Status:       model.VendorStatus(d.Status),
		Description:  d.Description,
		LogoURL:      d.LogoURL,
	}
}
