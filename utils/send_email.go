package utils

import (
	"fmt"
	"net/smtp"
)

type SMTPConfig struct {
	From     string
	Password string
	Host     string
	Port     string
}

func SendEmail(cfg SMTPConfig, to, subject, body string) error {
	// Headers: hỗ trợ UTF-8 & HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", cfg.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	err := smtp.SendMail(
		cfg.Host+":"+cfg.Port,
		smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host),
		cfg.From,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}
	return nil
}
