package service

import (
	"errors"
	"strings"
)

var (
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrVendorNotFound         = errors.New("vendor not found")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrMemberNotFound         = errors.New("member not found")
	ErrOrganizationNotFound   = errors.New("organization not found")
	ErrNoOrganization         = errors.New("user has no organization")
	ErrAlreadyInOrganization  = errors.New("user already belongs to an organization")
	ErrForbidden              = errors.New("forbidden")
	ErrVendorHasSubscriptions = errors.New("vendor still has subscriptions")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file too large")
)

// ValidationError lists every problem found with an input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// validation accumulates problems and yields nil when there are none.
type validation []string

func (v *validation) check(ok bool, problem string) {
	if !ok {
		*v = append(*v, problem)
	}
}

func (v validation) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Problems: v}
}
