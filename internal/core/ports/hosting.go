package ports

import (
	"context"
	"time"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

// HostingRepository defines persistence operations for hosting subscriptions.
type HostingRepository interface {
	List(ctx context.Context) ([]*domain.HostingService, error)
	FindByID(ctx context.Context, id string) (*domain.HostingService, error)
	Create(ctx context.Context, h *domain.HostingService) (*domain.HostingService, error)
	Replace(ctx context.Context, h *domain.HostingService) error
	Delete(ctx context.Context, id string) error
}

// HostingRecord is the read view of a subscription: the stored document
// plus the status derived at response time.
type HostingRecord struct {
	domain.HostingService
	Status domain.HostingStatus `json:"status"`
}

// HostingInput carries all data accepted when creating a subscription.
type HostingInput struct {
	ClientName      string
	WebsiteName     string
	WebsiteURL      string
	HostingProvider string
	PackageType     string
	Cost            float64
	Currency        string
	BillingCycle    domain.BillingCycle
	StartDate       time.Time
	EndDate         time.Time
	AutoRenew       bool
	ContactEmail    string
	Notes           string
}

// HostingPatch carries a partial update; nil fields are left untouched.
type HostingPatch struct {
	ClientName      *string
	WebsiteName     *string
	WebsiteURL      *string
	HostingProvider *string
	PackageType     *string
	Cost            *float64
	Currency        *string
	BillingCycle    *domain.BillingCycle
	StartDate       *time.Time
	EndDate         *time.Time
	AutoRenew       *bool
	ContactEmail    *string
	Notes           *string
}

// HostingService defines use-case operations for hosting subscriptions.
type HostingService interface {
	List(ctx context.Context, actor Actor) ([]*HostingRecord, error)
	Get(ctx context.Context, actor Actor, id string) (*HostingRecord, error)
	Create(ctx context.Context, actor Actor, input HostingInput) (*HostingRecord, error)
	Update(ctx context.Context, actor Actor, id string, patch HostingPatch) (*HostingRecord, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
