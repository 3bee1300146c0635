package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/mnasmart/onlinemart/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendOrderConfirmation notifies the buyer that payment for an order went
// through. Failures are logged by SendMail; callers treat this as best effort.
func SendOrderConfirmation(to, orderNumber string, amountKobo int64) error {
	subject := fmt.Sprintf("Order %s confirmed - M Nas Online Mart", orderNumber)
	body := fmt.Sprintf(
		"<p>Thank you for shopping with M Nas Online Mart!</p>"+
			"<p>We received your payment of &#8358;%.2f for order <strong>%s</strong>. "+
			"Your order is now being prepared.</p>",
		float64(amountKobo)/100, orderNumber,
	)
	return SendMail(to, subject, body)
}

// SendNewsletterWelcome greets a new newsletter subscriber.
func SendNewsletterWelcome(to string) error {
	subject := "Welcome to the M Nas Online Mart newsletter"
	body := "<p>Thanks for subscribing! You'll hear from us about new arrivals and deals.</p>"
	return SendMail(to, subject, body)
}
