package notifier

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"regexp"
)

// Some relays reject 8-bit bodies; the product names are upper-cased
// Spanish strings, so degrade anything non-ASCII to a space.
var nonASCII = regexp.MustCompile(`[^\x00-\x7F]+`)

// Mailer implements Dispatcher over SMTP with implicit TLS
type Mailer struct {
	addr      string
	sender    string
	password  string
	recipient string
}

// NewMailer creates a mailer for an addr of the form host:port
func NewMailer(addr, sender, password, recipient string) *Mailer {
	return &Mailer{
		addr:      addr,
		sender:    sender,
		password:  password,
		recipient: recipient,
	}
}

// Send delivers one message. Failures are not retried; the caller
// decides whether they are terminal.
func (m *Mailer) Send(subject, body string) error {
	host, _, err := net.SplitHostPort(m.addr)
	if err != nil {
		return fmt.Errorf("invalid smtp address %q: %w", m.addr, err)
	}

	msg := nonASCII.ReplaceAllString(
		fmt.Sprintf("Subject: %s\r\n\r\n%s", subject, body), " ")

	conn, err := tls.Dial("tcp", m.addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.sender, m.password, host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp authentication failed: %w", err)
	}

	if err := client.Mail(m.sender); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	if err := client.Rcpt(m.recipient); err != nil {
		return fmt.Errorf("smtp RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message body: %w", err)
	}
	return w.Close()
}
