// Package notify defines the notification interface and implementations
// for lead delivery.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/dvf-estimator/internal/metrics"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// LeadPayload contains the data needed to hand a contact lead to the sales
// team: who asked, what property, and what the engine answered.
type LeadPayload struct {
	ID          string                 `json:"id"`
	SubmittedAt time.Time              `json:"submitted_at"`
	Lead        domain.Lead            `json:"lead"`
	Query       *domain.ValuationQuery `json:"query"`
	Estimate    *domain.Valuation      `json:"estimate"`
	Reason      string                 `json:"reason,omitempty"`
}

// Notifier defines the interface for sending lead notifications.
type Notifier interface {
	SendLead(ctx context.Context, lead *LeadPayload) error
}

type namedNotifier struct {
	name string
	n    Notifier
}

// MultiNotifier fans a lead out to every configured backend. A failing
// backend does not prevent delivery to the others.
type MultiNotifier struct {
	targets []namedNotifier
	log     *slog.Logger
}

// NewMultiNotifier creates an empty MultiNotifier.
func NewMultiNotifier(log *slog.Logger) *MultiNotifier {
	return &MultiNotifier{log: log}
}

// Add registers a backend under name, used in logs and metrics.
func (m *MultiNotifier) Add(name string, n Notifier) {
	m.targets = append(m.targets, namedNotifier{name: name, n: n})
}

// Len returns the number of registered backends.
func (m *MultiNotifier) Len() int {
	return len(m.targets)
}

// SendLead delivers the lead to every backend and joins their errors.
func (m *MultiNotifier) SendLead(ctx context.Context, lead *LeadPayload) error {
	var errs []error
	for _, t := range m.targets {
		if err := t.n.SendLead(ctx, lead); err != nil {
			metrics.NotificationFailuresTotal.WithLabelValues(t.name).Inc()
			m.log.Warn("lead notification failed", "notifier", t.name, "lead_id", lead.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
		}
	}
	return errors.Join(errs...)
}

var (
	_ Notifier = (*MultiNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
	_ Notifier = (*KafkaNotifier)(nil)
	_ Notifier = (*NoOpNotifier)(nil)
)
