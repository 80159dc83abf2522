package domain

import (
	"errors"
	"time"
)

// BillingCycle is the renewal cadence of a hosting subscription.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
	CycleOneTime BillingCycle = "one-time"
)

// HostingStatus is derived from the end date; it is never persisted.
type HostingStatus string

const (
	HostingActive       HostingStatus = "active"
	HostingExpired      HostingStatus = "expired"
	HostingExpiringSoon HostingStatus = "expiring_soon"
)

// ExpiryWarningWindow is how close to the end date a subscription is
// reported as expiring_soon.
const ExpiryWarningWindow = 30 * 24 * time.Hour

var ErrHostingNotFound = errors.New("hosting service not found")

// ValidBillingCycle reports whether c is a known cycle.
func ValidBillingCycle(c BillingCycle) bool {
	switch c {
	case CycleMonthly, CycleYearly, CycleOneTime:
		return true
	}
	return false
}

// ExpiryStatus computes the subscription status at a given instant.
// Past end date: expired. Within the warning window: expiring_soon.
func ExpiryStatus(endDate, now time.Time) HostingStatus {
	remaining := endDate.Sub(now)
	switch {
	case remaining < 0:
		return HostingExpired
	case remaining <= ExpiryWarningWindow:
		return HostingExpiringSoon
	default:
		return HostingActive
	}
}

// HostingService tracks one hosting subscription for a client site.
// Status is intentionally absent from the stored document; read paths
// compute it with ExpiryStatus so it can never go stale.
type HostingService struct {
	ID              string       `json:"id" bson:"_id,omitempty"`
	ClientName      string       `json:"clientName" bson:"clientName"`
	WebsiteName     string       `json:"websiteName" bson:"websiteName"`
	WebsiteURL      string       `json:"websiteUrl,omitempty" bson:"websiteUrl,omitempty"`
	HostingProvider string       `json:"hostingProvider" bson:"hostingProvider"`
	PackageType     string       `json:"packageType,omitempty" bson:"packageType,omitempty"`
	Cost            float64      `json:"cost" bson:"cost"`
	Currency        string       `json:"currency" bson:"currency"`
	BillingCycle    BillingCycle `json:"billingCycle" bson:"billingCycle"`
	StartDate       time.Time    `json:"startDate" bson:"startDate"`
	EndDate         time.Time    `json:"endDate" bson:"endDate"`
	AutoRenew       bool         `json:"autoRenew" bson:"autoRenew"`
	ContactEmail    string       `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	Notes           string       `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy       string       `json:"createdBy" bson:"createdBy"`
	UpdatedBy       string       `json:"updatedBy" bson:"updatedBy"`
	CreatedAt       time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// StatusAt reports the derived status of this subscription at now.
func (h *HostingService) StatusAt(now time.Time) HostingStatus {
	return ExpiryStatus(h.EndDate, now)
}
