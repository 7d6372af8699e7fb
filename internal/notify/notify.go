// Package notify turns application events into email. Without SMTP
// settings it subscribes anyway and only logs, so the rest of the app
// never cares whether mail is configured.
package notify

import (
	"fmt"

	"github.com/campusworks/campusmarket/config"
	"github.com/campusworks/campusmarket/internal/app"
	"github.com/campusworks/campusmarket/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Notifier struct {
	cfg *config.SmtpConfig
}

// Init subscribes the notifier to the application's event bus.
func Init(appCtx app.AppContext) *Notifier {
	n := &Notifier{cfg: &appCtx.Config().Smtp}
	bus := appCtx.Bus()
	_ = bus.Subscribe("order.created", n.OnOrderCreated)
	_ = bus.Subscribe("contact.received", n.OnContactReceived)
	_ = bus.Subscribe("messages.digest", n.OnMessagesDigest)
	return n
}

func (n *Notifier) enabled() bool {
	return n.cfg.Host != "" && n.cfg.NotifyTo != ""
}

func (n *Notifier) send(subject, body string) {
	if !n.enabled() {
		zap.S().Debugf("smtp not configured, skipping mail %q", subject)
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.NotifyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		zap.S().Errorf("failed to send mail %q: %s", subject, err)
	}
}

// OnOrderCreated mails the back office about a new order.
func (n *Notifier) OnOrderCreated(order *domain.Order) {
	n.send(
		fmt.Sprintf("New order #%d", order.ID),
		fmt.Sprintf("Order #%d was placed for %.2f, payment method %s.\nShipping address: %s\n",
			order.ID, order.TotalAmount, order.PaymentMethod, order.ShippingAddress),
	)
}

// OnContactReceived mails the back office about a new contact message.
func (n *Notifier) OnContactReceived(msg *domain.ContactMessage) {
	n.send(
		fmt.Sprintf("Contact message: %s", msg.Subject),
		fmt.Sprintf("From: %s <%s>\n\n%s\n", msg.Name, msg.Email, msg.Message),
	)
}

// OnMessagesDigest mails a daily summary of unread messages.
func (n *Notifier) OnMessagesDigest(contacts, feedbacks int64) {
	n.send(
		"Unread message digest",
		fmt.Sprintf("There are %d unread contact messages and %d unread feedback entries.\n",
			contacts, feedbacks),
	)
}
