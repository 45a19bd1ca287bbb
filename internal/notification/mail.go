package notification

import (
	"context"
	"sync"

	"github.com/fekuna/perfume-order-service/internal/order/dto"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers one plain-text message per call over a shared go-mail client.
type SMTPSender struct {
	mu     sync.Mutex
	client *mail.Client
	from   string
}

func NewSMTPSender(cfg *SMTPConfig) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTPSender{client: client, from: cfg.From}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return err
	}
	if err := m.To(to); err != nil {
		return err
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.DialAndSendWithContext(ctx, m)
}

// MailNotifier sends the order email to each recipient individually.
type MailNotifier struct {
	sender     Sender
	recipients []string
	logger     logger.ZapLogger
}

func NewMailNotifier(sender Sender, recipients []string, log logger.ZapLogger) *MailNotifier {
	return &MailNotifier{
		sender:     sender,
		recipients: recipients,
		logger:     log,
	}
}

func (n *MailNotifier) NotifyOrderPlaced(ctx context.Context, msg *dto.OrderNotification) Report {
	report := Report{Failed: map[string]error{}}
	if len(n.recipients) == 0 {
		return report
	}

	subject, body, err := Render(msg)
	if err != nil {
		n.logger.Error("failed to render order email", zap.String("order_number", msg.OrderNumber), zap.Error(err))
		report.Attempted = len(n.recipients)
		for _, addr := range n.recipients {
			report.Failed[addr] = err
		}
		return report
	}

	for _, addr := range n.recipients {
		report.Attempted++
		if err := n.sender.Send(ctx, addr, subject, body); err != nil {
			n.logger.Warn("failed to send order email",
				zap.String("order_number", msg.OrderNumber),
				zap.String("recipient", addr),
				zap.Error(err),
			)
			report.Failed[addr] = err
			continue
		}
		report.Sent = append(report.Sent, addr)
	}
	return report
}
