package email

import (
	"context"
	"fmt"
	"github.com/spf13/viper"
	"github.com/wneessen/go-mail"
)

type EmailOutbound struct {
	Cfg *viper.Viper

	client   *mail.Client
	from     string
	fromName string
}

// Init builds the SMTP client. Authentication is skipped when email.user is empty,
// which is how local catch-all servers are usually run.
func (out *EmailOutbound) Init() error {
	out.from = out.Cfg.GetString("email.from")
	out.fromName = out.Cfg.GetString("email.from_name")

	opts := []mail.Option{
		mail.WithPort(out.Cfg.GetInt("email.port")),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if timeout := out.Cfg.GetDuration("email.timeout"); timeout > 0 {
		opts = append(opts, mail.WithTimeout(timeout))
	}

	if user := out.Cfg.GetString("email.user"); user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(out.Cfg.GetString("email.password")),
		)
	}

	client, err := mail.NewClient(out.Cfg.GetString("email.host"), opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	out.client = client
	return nil
}

func (out *EmailOutbound) Send(ctx context.Context, to []string, subject string, body string) error {
	msg, err := out.buildMessage(to, subject, body)
	if err != nil {
		return err
	}

	return out.client.DialAndSendWithContext(ctx, msg)
}

func (out *EmailOutbound) buildMessage(to []string, subject string, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.FromFormat(out.fromName, out.from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}

	if err := msg.To(to...); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}
