// Package notification turns domain events into outbound alerts. It
// subscribes to the event bus so domain modules never talk to SMTP
// directly, and alert failures never reach the code that raised the event.
package notification

import (
	"context"
	"strings"

	"boothlead_backend/internal/email"
	"boothlead_backend/internal/events"
	apphttp "boothlead_backend/internal/http"
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/internal/leads/scoring"
	"boothlead_backend/platform/config"
	"boothlead_backend/platform/logger"
)

// Module wires hot-lead alerts to the event bus. With no sender or no
// recipient it stays subscribed but only logs what it would have sent.
type Module struct {
	sender    email.Sender
	leads     *repository.Repository
	recipient string
	log       *logger.Logger
}

func NewModule(leadsRepo *repository.Repository, sender email.Sender, cfg config.EmailConfig, bus events.Bus, log *logger.Logger) *Module {
	m := &Module{
		sender:    sender,
		leads:     leadsRepo,
		recipient: cfg.GetAlertRecipient(),
		log:       log,
	}

	bus.Subscribe(events.LeadCaptured{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadCaptured)
		if !ok {
			return nil
		}
		m.handleLeadCaptured(ctx, e)
		return nil
	}))

	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes is a no-op: this module only consumes events.
func (m *Module) RegisterRoutes(_ *apphttp.RouterContext) {}

// handleLeadCaptured sends an alert for grade A or hot-tier leads.
// Errors are logged and swallowed so a broken SMTP server cannot affect
// the capture path.
func (m *Module) handleLeadCaptured(ctx context.Context, e events.LeadCaptured) {
	if !Alertable(e.Grade, e.Tier) {
		return
	}

	if m.sender == nil || m.recipient == "" {
		m.log.Info("hot lead alert skipped, email not configured",
			"leadId", e.LeadID, "score", e.Score, "grade", e.Grade)
		return
	}

	alert := email.HotLeadAlert{
		LeadName:     e.BusinessName,
		BusinessName: e.BusinessName,
		Score:        e.Score,
		Grade:        e.Grade,
		Tier:         e.Tier,
		ContactEmail: e.ContactEmail,
		CapturedAt:   e.CapturedAt,
	}

	// Enrich from the stored lead when possible; the event alone is enough
	// to send a useful alert.
	if m.leads != nil {
		if stored, err := m.leads.GetByID(ctx, e.LeadID); err == nil {
			alert.LeadName = stored.Lead.FullName()
			if stored.Lead.Phone != nil {
				alert.ContactPhone = *stored.Lead.Phone
			}
			names := make([]string, 0, len(stored.Lead.Brands))
			for _, b := range stored.Lead.Brands {
				names = append(names, b.Name())
			}
			alert.Brands = strings.Join(names, ", ")
		} else {
			m.log.DatabaseError("load lead for alert", err)
		}
	}
	if alert.LeadName == "" {
		alert.LeadName = "Unknown visitor"
	}

	if err := m.sender.SendHotLeadAlert(ctx, m.recipient, alert); err != nil {
		m.log.Error("failed to send hot lead alert", "error", err, "leadId", e.LeadID)
		return
	}
	m.log.Info("hot lead alert sent", "leadId", e.LeadID, "score", e.Score, "recipient", m.recipient)
}

// Alertable reports whether a captured lead warrants an immediate alert.
func Alertable(grade, tier string) bool {
	return grade == string(scoring.GradeA) || tier == string(scoring.TierHot)
}
