package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"
)

// ReminderEmail 账单提醒邮件的参数
type ReminderEmail struct {
	UserEmail     string  `json:"user_email"`
	UserName      string  `json:"user_name"`
	ReminderTitle string  `json:"reminder_title"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"due_date"`
}

// DispatchResult 发送结果，失败时 Error 描述原因
type DispatchResult struct {
	Success bool             `json:"success"`
	Data    *DeliveryReceipt `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Notifier 账单提醒邮件发送器
type Notifier struct {
	transport MailTransport
	from      string
}

// NewNotifier 创建提醒邮件发送器，from 形如 "ExpenseTracker <onboarding@resend.dev>"
func NewNotifier(transport MailTransport, from string) *Notifier {
	return &Notifier{transport: transport, from: from}
}

// SendReminderEmail 发送账单提醒；任何失败都转换为 Success=false，不会 panic
func (n *Notifier) SendReminderEmail(ctx context.Context, req ReminderEmail) (result DispatchResult) {
	defer func() {
		if r := recover(); r != nil {
			result = DispatchResult{Success: false, Error: fmt.Sprintf("邮件通道异常: %v", r)}
		}
	}()

	if n == nil || n.transport == nil {
		return DispatchResult{Success: false, Error: "邮件通道未配置"}
	}
	if req.UserEmail == "" {
		return DispatchResult{Success: false, Error: "收件人邮箱为空"}
	}

	receipt, err := n.transport.Send(ctx, MailMessage{
		From:    n.from,
		To:      req.UserEmail,
		Subject: reminderSubject(req),
		HTML:    reminderEmailBody(req),
	})
	if err != nil {
		return DispatchResult{Success: false, Error: err.Error()}
	}
	return DispatchResult{Success: true, Data: receipt}
}

// Err 将失败结果转换为 *NotificationDispatchError
func (r DispatchResult) Err(recipient string) error {
	if r.Success {
		return nil
	}
	return &NotificationDispatchError{Recipient: recipient, Err: errors.New(r.Error)}
}

func reminderSubject(req ReminderEmail) string {
	return fmt.Sprintf("Bill Reminder: %s - Due %s", req.ReminderTitle, req.DueDate)
}

// formatDueDate 2024-06-01 -> Jun 1, 2024，无法解析时原样返回
func formatDueDate(raw string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006")
}

// reminderEmailBody 生成提醒邮件内容
func reminderEmailBody(req ReminderEmail) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #667eea, #764ba2); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .bill { background: #f8f9fa; border-left: 4px solid #667eea; border-radius: 8px; padding: 20px; margin: 20px 0; }
        .bill h2 { margin: 0 0 12px; color: #333; font-size: 20px; }
        .bill p { margin: 6px 0; }
        .amount { font-size: 22px; font-weight: bold; color: #e53e3e; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 Bill Reminder</h1>
        </div>
        <div class="content">
            <p>Hi %s! 👋</p>
            <p>This is a friendly reminder that you have an upcoming bill payment:</p>
            <div class="bill">
                <h2>%s</h2>
                <p><strong>Amount:</strong> <span class="amount">$%.2f</span></p>
                <p><strong>Due Date:</strong> %s</p>
            </div>
            <p>Don't forget to make your payment on time to avoid any late fees!</p>
        </div>
        <div class="footer">
            <p>This email was sent automatically, please do not reply</p>
            <p>© ExpenseTracker</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(req.UserName), html.EscapeString(req.ReminderTitle), req.Amount, html.EscapeString(formatDueDate(req.DueDate)))
}
