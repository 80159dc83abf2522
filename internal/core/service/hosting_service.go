package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// HostingService implements hosting-subscription use cases. The derived
// expiry status is computed into every returned record, never stored.
type HostingService struct {
	repo   ports.HostingRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewHostingService(repo ports.HostingRepository, logger zerolog.Logger) *HostingService {
	return &HostingService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func (s *HostingService) List(ctx context.Context, actor ports.Actor) ([]*ports.HostingRecord, error) {
	if !actor.Can(domain.PermViewClients) {
		return nil, domain.ErrForbidden
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	records := make([]*ports.HostingRecord, 0, len(items))
	for _, h := range items {
		records = append(records, s.record(h, now))
	}
	return records, nil
}

func (s *HostingService) Get(ctx context.Context, actor ports.Actor, id string) (*ports.HostingRecord, error) {
	if !actor.Can(domain.PermViewClients) {
		return nil, domain.ErrForbidden
	}
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.record(h, s.now()), nil
}

func (s *HostingService) Create(ctx context.Context, actor ports.Actor, input ports.HostingInput) (*ports.HostingRecord, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}
	if input.ClientName == "" || input.WebsiteName == "" {
		return nil, fmt.Errorf("%w: clientName and websiteName are required", domain.ErrValidation)
	}
	if input.BillingCycle == "" {
		input.BillingCycle = domain.CycleYearly
	}
	if !domain.ValidBillingCycle(input.BillingCycle) {
		return nil, fmt.Errorf("%w: unknown billing cycle %q", domain.ErrValidation, input.BillingCycle)
	}
	if input.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: endDate is required", domain.ErrValidation)
	}

	now := s.now()
	h := &domain.HostingService{
		ClientName:      input.ClientName,
		WebsiteName:     input.WebsiteName,
		WebsiteURL:      input.WebsiteURL,
		HostingProvider: input.HostingProvider,
		PackageType:     input.PackageType,
		Cost:            input.Cost,
		Currency:        input.Currency,
		BillingCycle:    input.BillingCycle,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		AutoRenew:       input.AutoRenew,
		ContactEmail:    input.ContactEmail,
		Notes:           input.Notes,
		CreatedBy:       actor.Username,
		UpdatedBy:       actor.Username,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, h)
	if err != nil {
		s.logger.Error().Err(err).Str("website", input.WebsiteName).Msg("failed to create hosting record")
		return nil, err
	}

	s.logger.Info().Str("hosting_id", created.ID).Str("website", created.WebsiteName).Msg("hosting record created")
	return s.record(created, now), nil
}

func (s *HostingService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.HostingPatch) (*ports.HostingRecord, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ClientName != nil {
		h.ClientName = *patch.ClientName
	}
	if patch.WebsiteName != nil {
		h.WebsiteName = *patch.WebsiteName
	}
	if patch.WebsiteURL != nil {
		h.WebsiteURL = *patch.WebsiteURL
	}
	if patch.HostingProvider != nil {
		h.HostingProvider = *patch.HostingProvider
	}
	if patch.PackageType != nil {
		h.PackageType = *patch.PackageType
	}
	if patch.Cost != nil {
		h.Cost = *patch.Cost
	}
	if patch.Currency != nil {
		h.Currency = *patch.Currency
	}
	if patch.BillingCycle != nil {
		if !domain.ValidBillingCycle(*patch.BillingCycle) {
			return nil, fmt.Errorf("%w: unknown billing cycle %q", domain.ErrValidation, *patch.BillingCycle)
		}
		h.BillingCycle = *patch.BillingCycle
	}
	if patch.StartDate != nil {
		h.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		h.EndDate = *patch.EndDate
	}
	if patch.AutoRenew != nil {
		h.AutoRenew = *patch.AutoRenew
	}
	if patch.ContactEmail != nil {
		h.ContactEmail = *patch.ContactEmail
	}
	if patch.Notes != nil {
		h.Notes = *patch.Notes
	}

	h.UpdatedBy = actor.Username
	h.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, h); err != nil {
		s.logger.Error().Err(err).Str("hosting_id", id).Msg("failed to update hosting record")
		return nil, err
	}
	return s.record(h, h.UpdatedAt), nil
}

func (s *HostingService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("hosting_id", id).Str("by", actor.Username).Msg("hosting record deleted")
	return nil
}

func (s *HostingService) record(h *domain.HostingService, now time.Time) *ports.HostingRecord {
	return &ports.HostingRecord{HostingService: *h, Status: h.StatusAt(now)}
}
