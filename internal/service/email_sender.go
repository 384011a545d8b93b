package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/chronotes/chronotes/internal/config"
	appErr "github.com/chronotes/chronotes/internal/pkg/errors"
)

// EmailSender delivers the verification code out of band. Dispatch is
// fire-and-forget; there is no retry at this layer.
type EmailSender interface {
	SendVerificationCode(to, code string) error
}

type smtpSender struct {
	cfg config.MailConfig
}

func NewEmailSender(cfg config.MailConfig) EmailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) SendVerificationCode(to, code string) error {
	from := strings.TrimSpace(s.cfg.From)
	if s.cfg.Host == "" || s.cfg.Port == 0 || from == "" {
		return appErr.ErrInvalid
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	subject := "Chronotes verification code"
	body := fmt.Sprintf("Your verification code is %s.\r\n\r\nIt expires in 5 minutes. Do not share it with anyone.\r\n\r\nIf you did not request this, ignore this email.", code)
	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" + body)
	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}
