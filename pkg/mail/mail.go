package mail

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"exchange_back/models"

	"github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Config struct {
	From          string
	FromName      string
	AdminEmail    string
	MailjetKey    string
	MailjetSecret string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	// OTPTTL is how long a verification code stays valid, quoted in the mail.
	OTPTTL time.Duration
}

// sendFunc delivers one HTML message.
type sendFunc func(to, subject, html string) error

// Mailer sends transactional mail through Mailjet when API keys are set,
// plain SMTP when a host is set, and only logs otherwise.
type Mailer struct {
	cfg  Config
	send sendFunc
}

func NewMailer(cfg Config) *Mailer {
	m := &Mailer{cfg: cfg}
	switch {
	case cfg.MailjetKey != "" && cfg.MailjetSecret != "":
		m.send = m.sendMailjet(mailjet.NewMailjetClient(cfg.MailjetKey, cfg.MailjetSecret))
		logrus.Info("mail: using Mailjet")
	case cfg.SMTPHost != "":
		m.send = m.sendSMTP(gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword))
		logrus.Infof("mail: using SMTP %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	default:
		m.send = func(to, subject, _ string) error {
			logrus.Warnf("mail: no transport configured, dropping %q to %s", subject, to)
			return nil
		}
	}
	return m
}

func (m *Mailer) sendMailjet(client *mailjet.Client) sendFunc {
	return func(to, subject, html string) error {
		messages := &mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: m.cfg.From,
					Name:  m.cfg.FromName,
				},
				To: &mailjet.RecipientsV31{
					{Email: to},
				},
				Subject:  subject,
				HTMLPart: html,
			},
		}}
		res, err := client.SendMailV31(messages)
		if err != nil {
			return errors.Wrap(err, "mailjet send")
		}
		logrus.Debugf("mailjet response: %+v", res)
		return nil
	}
}

func (m *Mailer) sendSMTP(dialer *gomail.Dialer) sendFunc {
	return func(to, subject, html string) error {
		msg := gomail.NewMessage()
		msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", html)
		return errors.Wrap(dialer.DialAndSend(msg), "smtp send")
	}
}

var otpTemplate = template.Must(template.New("otp").Parse(`<body style="margin:0;padding:0;background:#f6f6f6;">
  <div style="max-width:600px;margin:32px auto;background:#f3f2f0;border-radius:28px;padding:32px;font-family:Arial,sans-serif;">
    <h1 style="margin:0 0 12px 0;font-size:28px;color:#111;">Verify your email</h1>
    <p style="margin:0 0 24px 0;font-size:18px;color:#222;">Your verification code is:</p>
    <p style="font-size:36px;font-weight:700;letter-spacing:8px;color:#111;">{{.Code}}</p>
    <p style="font-size:13px;color:#aaa;">The code expires in {{.Minutes}} minutes. If you did not sign up, ignore this message.</p>
  </div>
</body>`))

var swapTemplate = template.Must(template.New("swap").Parse(`<body style="margin:0;padding:0;background:#f6f6f6;">
  <div style="max-width:600px;margin:32px auto;background:#f3f2f0;border-radius:28px;padding:32px;font-family:Arial,sans-serif;">
    <h1 style="margin:0 0 12px 0;font-size:28px;color:#111;">New swap</h1>
    <table cellpadding="0" cellspacing="0" border="0" style="width:100%;font-size:16px;">
      <tr><td style="color:#555;padding:6px 0;">User:</td><td style="color:#111;font-weight:bold;">{{.Email}}</td></tr>
      <tr><td style="color:#555;padding:6px 0;">From:</td><td style="color:#111;font-weight:bold;">{{.FromAmount}} {{.From}}</td></tr>
      <tr><td style="color:#555;padding:6px 0;">To:</td><td style="color:#111;font-weight:bold;">{{.ToAmount}} {{.To}}</td></tr>
    </table>
  </div>
</body>`))

const defaultOTPTTL = 10 * time.Minute

func (m *Mailer) SendOTP(_ context.Context, email, code string) error {
	var buf bytes.Buffer
	ttl := m.cfg.OTPTTL
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	if err := otpTemplate.Execute(&buf, map[string]interface{}{"Code": code, "Minutes": int(ttl.Minutes())}); err != nil {
		return errors.Wrap(err, "render otp mail")
	}
	return m.send(email, "Your verification code", buf.String())
}

// NotifySwap tells the admin mailbox about a completed swap.
func (m *Mailer) NotifySwap(_ context.Context, userEmail string, swap models.SwapExecution) error {
	if m.cfg.AdminEmail == "" {
		return nil
	}
	var buf bytes.Buffer
	err := swapTemplate.Execute(&buf, map[string]interface{}{
		"Email":      userEmail,
		"From":       swap.From.Name,
		"To":         swap.To.Name,
		"FromAmount": swap.FromAmount.String(),
		"ToAmount":   swap.ToAmount.String(),
	})
	if err != nil {
		return errors.Wrap(err, "render swap mail")
	}
	return m.send(m.cfg.AdminEmail, "New swap: "+swap.From.Name+" → "+swap.To.Name, buf.String())
}
