package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"expensetracker/config"

	"github.com/google/uuid"
)

// MailMessage 待投递的邮件
type MailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// DeliveryReceipt 投递回执
type DeliveryReceipt struct {
	ID        string    `json:"id"`
	Transport string    `json:"transport"`
	SentAt    time.Time `json:"sent_at"`
}

// MailTransport 邮件投递通道
type MailTransport interface {
	Send(ctx context.Context, msg MailMessage) (*DeliveryReceipt, error)
}

func newReceipt(transport, id string) *DeliveryReceipt {
	if id == "" {
		id = uuid.NewString()
	}
	return &DeliveryReceipt{ID: id, Transport: transport, SentAt: time.Now()}
}

// LogTransport 只记录日志，用于未启用邮件服务的开发环境
type LogTransport struct{}

func (LogTransport) Send(ctx context.Context, msg MailMessage) (*DeliveryReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Printf("[mail] to=%s subject=%q (%d bytes)", msg.To, msg.Subject, len(msg.HTML))
	return newReceipt(config.TransportLog, ""), nil
}

// NewTransport 根据配置创建邮件通道；邮件服务未启用时退化为日志通道
func NewTransport(cfg *config.EmailConfig) (MailTransport, error) {
	if !cfg.Enabled {
		return LogTransport{}, nil
	}
	switch cfg.Transport {
	case "", config.TransportSMTP:
		return NewSMTPTransport(cfg), nil
	case config.TransportResend:
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend 通道需要配置 email.resend_api_key")
		}
		return NewResendTransport(cfg.ResendBaseURL, cfg.ResendAPIKey), nil
	case config.TransportAMQP:
		return NewAMQPTransport(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	case config.TransportLog:
		return LogTransport{}, nil
	default:
		return nil, fmt.Errorf("不支持的邮件通道: %s", cfg.Transport)
	}
}

// SenderAddress 发件人地址，未配置 from 时使用 Resend 的测试地址
func SenderAddress(cfg *config.EmailConfig) string {
	name := cfg.FromName
	if name == "" {
		name = "ExpenseTracker"
	}
	from := cfg.From
	if from == "" {
		from = "onboarding@resend.dev"
	}
	return fmt.Sprintf("%s <%s>", name, from)
}
