package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/aroolinks/agencydesk/internal/api/metrics"
	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// ReminderStore abstracts the reminder dedup store (Redis). A given
// (hosting record, end date) pair is announced at most once.
type ReminderStore interface {
	AlreadySent(ctx context.Context, hostingID string, endDate time.Time) (bool, error)
	MarkSent(ctx context.Context, hostingID string, endDate time.Time) error
}

// RenewalNotifier periodically sweeps hosting subscriptions and emails a
// renewal reminder for each one that is expiring or already expired.
// Sends are paced by a rate limiter and never retried on failure.
type RenewalNotifier struct {
	repo     ports.HostingRepository
	mailer   ports.Mailer
	store    ReminderStore
	limiter  *rate.Limiter
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewRenewalNotifier(
	repo ports.HostingRepository,
	mailer ports.Mailer,
	store ReminderStore,
	interval time.Duration,
	sendDelay time.Duration,
	log zerolog.Logger,
) *RenewalNotifier {
	if interval <= 0 {
		interval = time.Hour
	}
	if sendDelay <= 0 {
		sendDelay = 2 * time.Second
	}
	return &RenewalNotifier{
		repo:     repo,
		mailer:   mailer,
		store:    store,
		limiter:  rate.NewLimiter(rate.Every(sendDelay), 1),
		interval: interval,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (n *RenewalNotifier) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := n.Sweep(ctx); err != nil {
					n.log.Error().Err(err).Msg("renewal sweep failed")
				}
			}
		}
	}()
}

// Sweep runs one pass over all hosting records.
func (n *RenewalNotifier) Sweep(ctx context.Context) error {
	records, err := n.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("renewal sweep: %w", err)
	}

	now := n.now()
	for _, h := range records {
		status := h.StatusAt(now)
		if status == domain.HostingActive {
			continue
		}
		if h.ContactEmail == "" {
			continue
		}

		sent, err := n.store.AlreadySent(ctx, h.ID, h.EndDate)
		if err != nil {
			n.log.Warn().Err(err).Str("hosting_id", h.ID).Msg("reminder dedup check failed, sending anyway")
		} else if sent {
			continue
		}

		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := n.mailer.Send(ctx, h.ContactEmail, reminderSubject(h, status), reminderBody(h, status, now)); err != nil {
			// Fire-and-forget: log and move on, no retry.
			n.log.Error().Err(err).Str("hosting_id", h.ID).Str("to", h.ContactEmail).Msg("reminder send failed")
			metrics.RemindersFailedTotal.Inc()
			continue
		}

		if err := n.store.MarkSent(ctx, h.ID, h.EndDate); err != nil {
			n.log.Warn().Err(err).Str("hosting_id", h.ID).Msg("failed to mark reminder as sent")
		}

		metrics.RemindersSentTotal.WithLabelValues(string(status)).Inc()
		n.log.Info().Str("hosting_id", h.ID).Str("website", h.WebsiteName).Str("status", string(status)).Msg("renewal reminder sent")
	}
	return nil
}

func reminderSubject(h *domain.HostingService, status domain.HostingStatus) string {
	if status == domain.HostingExpired {
		return fmt.Sprintf("Hosting expired: %s", h.WebsiteName)
	}
	return fmt.Sprintf("Hosting renewal due soon: %s", h.WebsiteName)
}

func reminderBody(h *domain.HostingService, status domain.HostingStatus, now time.Time) string {
	days := int(h.EndDate.Sub(now).Hours() / 24)
	if status == domain.HostingExpired {
		return fmt.Sprintf(
			"The hosting subscription for %s (%s) with %s expired on %s.\nPlease renew or cancel the service.",
			h.WebsiteName, h.ClientName, h.HostingProvider, h.EndDate.Format("2 January 2006"),
		)
	}
	return fmt.Sprintf(
		"The hosting subscription for %s (%s) with %s expires on %s (%d days from now).\nAuto-renew: %v.",
		h.WebsiteName, h.ClientName, h.HostingProvider, h.EndDate.Format("2 January 2006"), days, h.AutoRenew,
	)
}
