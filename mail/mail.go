// Package mail delivers notification mails over SMTP.
package mail

import (
	"context"

	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/logger"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ core.Mailer = (*Mailer)(nil)

func NewMailer(config core.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
	}
}

// SendEach sends one separate mail per recipient, so recipients can't see
// each other's addresses. It returns the addresses that could not be
// delivered to. The SMTP connection is dialed once and reused.
func (m *Mailer) SendEach(ctx context.Context, recipients []string, subject, body string) ([]string, error) {

	if len(recipients) == 0 {
		return nil, nil
	}

	sender, err := m.dialer.Dial()
	if err != nil {
		return recipients, err
	}
	defer sender.Close()

	var failed []string
	var msg = gomail.NewMessage()
	for i, recipient := range recipients {
		if err := ctx.Err(); err != nil {
			return append(failed, recipients[i:]...), err
		}
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", recipient)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/plain", body)
		if err := gomail.Send(sender, msg); err != nil {
			logger.Log.WithField("to", recipient).Warnf("sending mail: %v", err)
			failed = append(failed, recipient)
		}
		msg.Reset()
	}
	return failed, nil
}
