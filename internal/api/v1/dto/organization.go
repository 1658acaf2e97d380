package dto

import "vendorhub/internal/model"

// OrganizationCreateDTO initializes the caller's organization.
type OrganizationCreateDTO struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// MeResponseDTO is the caller's profile and organization, if any.
type MeResponseDTO struct {
	Profile      model.Profile       `json:"profile"`
	Organization *model.Organization `json:"organization"`
}

// RoleUpdateDTO changes a member's role.
type RoleUpdateDTO struct {
	Role string `json:"role" validate:"required,oneof=owner admin member viewer"`
}

// CategoryCreateDTO creates a vendor category.
type CategoryCreateDTO struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// ToModel converts the request to a category.
func (d CategoryCreateDTO) ToModel() *model.Category {
	return &model.Category{Name: d.Name, Description: d.Description, Color: d.Color}
}
