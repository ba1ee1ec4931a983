package service

import (
	"context"
	"fmt"
	"net/mail"

	"expensetracker/config"

	"gopkg.in/gomail.v2"
)

// SMTPTransport 通过 SMTP 发送邮件
type SMTPTransport struct {
	cfg *config.EmailConfig
}

// NewSMTPTransport 创建 SMTP 邮件通道
func NewSMTPTransport(cfg *config.EmailConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

func (s *SMTPTransport) Send(ctx context.Context, msg MailMessage) (*DeliveryReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := s.buildMessage(msg)
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("发送邮件失败: %w", err)
	}

	return newReceipt(config.TransportSMTP, ""), nil
}

// buildMessage 组装邮件；From 形如 "名称 <地址>" 时拆分后格式化
func (s *SMTPTransport) buildMessage(msg MailMessage) *gomail.Message {
	m := gomail.NewMessage()
	if addr, err := mail.ParseAddress(msg.From); err == nil {
		m.SetHeader("From", m.FormatAddress(addr.Address, addr.Name))
	} else {
		m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.FromName))
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}
