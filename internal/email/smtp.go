package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const subjectHotLeadFmt = "Hot lead at the booth: %s (score %d)"

// HotLeadAlert carries everything the alert template needs.
type HotLeadAlert struct {
	LeadName     string
	BusinessName string
	Score        int
	Grade        string
	Tier         string
	ContactEmail string
	ContactPhone string
	Brands       string
	CapturedAt   time.Time
}

// Sender delivers booth alert emails.
type Sender interface {
	SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error
}

// SMTPSender implements Sender using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendHotLeadAlert renders and delivers the hot lead alert.
func (s *SMTPSender) SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error {
	content, err := renderEmailTemplate("hot_lead_alert.html", hotLeadEmailData{
		baseEmailData: baseEmailData{
			Title:   "Hot lead captured",
			Heading: "Hot lead captured",
		},
		LeadName:     alert.LeadName,
		BusinessName: alert.BusinessName,
		Score:        alert.Score,
		Grade:        alert.Grade,
		Tier:         alert.Tier,
		ContactEmail: alert.ContactEmail,
		ContactPhone: alert.ContactPhone,
		Brands:       alert.Brands,
		CapturedAt:   alert.CapturedAt.Format("Jan 2, 2006 3:04 PM"),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectHotLeadFmt, alert.LeadName, alert.Score), content)
}
