package notification

import (
	"context"
	"errors"
	"testing"

	"boothlead_backend/internal/email"
	"boothlead_backend/internal/events"
	"boothlead_backend/platform/logger"

	"github.com/google/uuid"
)

type testEmailConfig struct {
	recipient string
}

func (c testEmailConfig) GetEmailEnabled() bool       { return true }
func (c testEmailConfig) GetSMTPHost() string         { return "smtp.example.com" }
func (c testEmailConfig) GetSMTPPort() int            { return 587 }
func (c testEmailConfig) GetSMTPUsername() string     { return "booth" }
func (c testEmailConfig) GetSMTPPassword() string     { return "secret" }
func (c testEmailConfig) GetEmailFromName() string    { return "Booth Alerts" }
func (c testEmailConfig) GetEmailFromAddress() string { return "alerts@example.com" }
func (c testEmailConfig) GetAlertRecipient() string   { return c.recipient }

type testSender struct {
	calls []email.HotLeadAlert
	to    string
	err   error
}

func (s *testSender) SendHotLeadAlert(_ context.Context, toEmail string, alert email.HotLeadAlert) error {
	s.to = toEmail
	s.calls = append(s.calls, alert)
	return s.err
}

func captured(score int, grade, tier string) events.LeadCaptured {
	return events.LeadCaptured{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       uuid.New(),
		Score:        score,
		Grade:        grade,
		Tier:         tier,
		BusinessName: "Reyes Wholesale",
		ContactEmail: "jordan@reyes.example",
	}
}

func TestAlertable(t *testing.T) {
	tests := []struct {
		grade, tier string
		want        bool
	}{
		{"A", "hot", true},
		{"A", "warm", true},
		{"B", "hot", true},
		{"B", "warm", false},
		{"D", "cold", false},
	}
	for _, tt := range tests {
		if got := Alertable(tt.grade, tt.tier); got != tt.want {
			t.Errorf("Alertable(%q, %q) = %v, want %v", tt.grade, tt.tier, got, tt.want)
		}
	}
}

func TestHotLeadTriggersAlert(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &testSender{}
	NewModule(nil, sender, testEmailConfig{recipient: "sales@example.com"}, bus, log)

	if err := bus.PublishSync(context.Background(), captured(85, "A", "hot")); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(sender.calls) != 1 {
		t.Fatalf("sender calls = %d, want 1", len(sender.calls))
	}
	if sender.to != "sales@example.com" {
		t.Errorf("recipient = %q", sender.to)
	}
	alert := sender.calls[0]
	if alert.Score != 85 || alert.Grade != "A" || alert.Tier != "hot" {
		t.Errorf("alert = %+v", alert)
	}
	if alert.LeadName != "Reyes Wholesale" {
		t.Errorf("LeadName = %q, want business name fallback without a repository", alert.LeadName)
	}
}

func TestWarmLeadDoesNotAlert(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &testSender{}
	NewModule(nil, sender, testEmailConfig{recipient: "sales@example.com"}, bus, log)

	if err := bus.PublishSync(context.Background(), captured(66, "B", "warm")); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(sender.calls) != 0 {
		t.Fatalf("warm lead should not alert, got %d calls", len(sender.calls))
	}
}

func TestSenderFailureIsSwallowed(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &testSender{err: errors.New("smtp down")}
	NewModule(nil, sender, testEmailConfig{recipient: "sales@example.com"}, bus, log)

	if err := bus.PublishSync(context.Background(), captured(85, "A", "hot")); err != nil {
		t.Fatalf("sender failure must not propagate, got %v", err)
	}
}

func TestMissingRecipientSkipsSend(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &testSender{}
	NewModule(nil, sender, testEmailConfig{}, bus, log)

	if err := bus.PublishSync(context.Background(), captured(85, "A", "hot")); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(sender.calls) != 0 {
		t.Fatalf("no recipient configured, got %d calls", len(sender.calls))
	}
}
