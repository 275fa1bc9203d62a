// Package notify formats and delivers goal notifications. The delivery
// channel is SMS over a carrier email-to-SMS gateway: the message is sent as
// a plain-text email to "<number>@<gateway-domain>" through an SMTP relay
// with STARTTLS. Delivery is at-most-once; failures are reported to the
// caller, logged, and dropped.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/wneessen/go-mail"

	"goalwatch/internal/types"
)

// phonePattern matches a bare subscriber number after normalization.
var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// NormalizePhoneNumber strips dashes and spaces from a dialed number, the
// way it arrives from the CLI argument.
func NormalizePhoneNumber(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '-' || raw[i] == ' ' {
			continue
		}
		out = append(out, raw[i])
	}
	return string(out)
}

// SMSGatewayConfig holds the SMTP relay and target settings.
type SMSGatewayConfig struct {
	PhoneNumber   string
	GatewayDomain string
	SMTPServer    string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  types.SecretString
	Logger        *slog.Logger
}

// SMSGateway delivers pre-formatted text messages to a phone number through
// a carrier email relay.
type SMSGateway struct {
	client *mail.Client
	from   string
	to     string
	logger *slog.Logger
}

// NewSMSGateway validates the target and constructs the SMTP client. The
// connection is dialed per delivery, not held open; goals are rare events.
func NewSMSGateway(cfg SMSGatewayConfig) (*SMSGateway, error) {
	number := NormalizePhoneNumber(cfg.PhoneNumber)
	if !phonePattern.MatchString(number) {
		return nil, types.NewAppError(types.ErrCodeDeliveryTarget,
			fmt.Sprintf("invalid phone number %q", cfg.PhoneNumber), nil)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := mail.NewClient(cfg.SMTPServer,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword.Unmask()),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeConfigInvalid,
			"failed to construct SMTP client", err)
	}

	return &SMSGateway{
		client: client,
		from:   cfg.SMTPUsername,
		to:     fmt.Sprintf("%s@%s", number, cfg.GatewayDomain),
		logger: logger,
	}, nil
}

// Target returns the gateway address messages are delivered to.
func (g *SMSGateway) Target() string {
	return g.to
}

// Deliver sends one message body through the relay. The subject is left
// empty so the carrier renders a clean SMS.
func (g *SMSGateway) Deliver(ctx context.Context, message string) error {
	msg := mail.NewMsg()
	if err := msg.From(g.from); err != nil {
		return types.NewAppError(types.ErrCodeDeliverySend, "invalid sender address", err)
	}
	if err := msg.To(g.to); err != nil {
		return types.NewAppError(types.ErrCodeDeliveryTarget, "invalid gateway address", err)
	}
	msg.Subject("")
	msg.SetBodyString(mail.TypeTextPlain, message)

	if err := g.client.DialAndSendWithContext(ctx, msg); err != nil {
		return types.NewAppError(types.ErrCodeDeliverySend,
			fmt.Sprintf("SMTP send to %s failed", RedactTarget(g.to)), err)
	}

	g.logger.Info("SMS delivered", "dest", RedactTarget(g.to))
	return nil
}

// RedactTarget masks all but the last two digits of the local part of a
// gateway address for logging.
func RedactTarget(addr string) string {
	at := -1
	for i, c := range addr {
		if c == '@' {
			at = i
			break
		}
	}
	if at <= 2 {
		return "***"
	}
	return "***" + addr[at-2:]
}
