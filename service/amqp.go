package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"expensetracker/config"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// AMQPTransport 将邮件投递到 RabbitMQ，由外部发信服务消费
type AMQPTransport struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewAMQPTransport 连接 RabbitMQ 并声明持久化的 exchange 和 queue
func NewAMQPTransport(url, exchangeName, queueName string) (*AMQPTransport, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接 AMQP 失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("打开 AMQP channel 失败: %w", err)
	}

	t := &AMQPTransport{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}
	if err := t.setup(); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

func (t *AMQPTransport) setup() error {
	if err := t.channel.ExchangeDeclare(t.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明 exchange 失败: %w", err)
	}
	if _, err := t.channel.QueueDeclare(t.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明 queue 失败: %w", err)
	}
	// direct exchange，routing key 与队列同名
	if err := t.channel.QueueBind(t.queueName, t.queueName, t.exchangeName, false, nil); err != nil {
		return fmt.Errorf("绑定 queue 失败: %w", err)
	}
	return nil
}

// newPublishing 把邮件编码为持久化消息
func newPublishing(msg MailMessage, messageID string) (amqp091.Publishing, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return amqp091.Publishing{}, err
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now(),
		Body:         body,
	}, nil
}

func (t *AMQPTransport) Send(ctx context.Context, msg MailMessage) (*DeliveryReceipt, error) {
	messageID := uuid.NewString()
	pub, err := newPublishing(msg, messageID)
	if err != nil {
		return nil, fmt.Errorf("编码邮件消息失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := t.channel.PublishWithContext(ctx, t.exchangeName, t.queueName, false, false, pub); err != nil {
		return nil, fmt.Errorf("发布邮件消息失败: %w", err)
	}

	log.Printf("邮件消息已入队: id=%s to=%s queue=%s", messageID, msg.To, t.queueName)
	return newReceipt(config.TransportAMQP, messageID), nil
}

func (t *AMQPTransport) Close() error {
	if t.channel != nil {
		t.channel.Close()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
