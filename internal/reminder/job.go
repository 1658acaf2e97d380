// Package reminder finds subscriptions approaching renewal and queues
// notification jobs for each organization's owners and admins.
package reminder

import (
	"fmt"

	"vendorhub/internal/analytics"
)

// Job is the payload placed on the reminder queue.
type Job struct {
	OrganizationID   string            `json:"organization_id"`
	OrganizationName string            `json:"organization_name"`
	SubscriptionID   string            `json:"subscription_id"`
	SubscriptionName string            `json:"subscription_name"`
	VendorName       string            `json:"vendor_name"`
	Cost             string            `json:"cost"`
	Currency         string            `json:"currency"`
	RenewalDate      string            `json:"renewal_date"`
	DaysUntilRenewal int               `json:"days_until_renewal"`
	Urgency          analytics.Urgency `json:"urgency"`
	AutoRenew        bool              `json:"auto_renew"`
	Recipients       []string          `json:"recipients"`
}

// DedupKey identifies one reminder. A new key appears when the renewal date
// moves or the alert escalates to a new urgency.
func DedupKey(subscriptionID, renewalDate string, urgency analytics.Urgency) string {
	return fmt.Sprintf("reminder:%s:%s:%s", subscriptionID, renewalDate, urgency)
}

func newJob(orgID, orgName string, a analytics.RenewalAlert, recipients []string) Job {
	return Job{
		OrganizationID:   orgID,
		OrganizationName: orgName,
		SubscriptionID:   a.SubscriptionID,
		SubscriptionName: a.SubscriptionName,
		VendorName:       a.VendorName,
		Cost:             a.Cost.StringFixed(2),
		Currency:         a.Currency,
		RenewalDate:      analytics.FormatDate(a.RenewalDate),
		DaysUntilRenewal: a.DaysUntilRenewal,
		Urgency:          a.Urgency,
		AutoRenew:        a.AutoRenew,
		Recipients:       recipients,
	}
}
