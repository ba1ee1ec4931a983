package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"expensetracker/config"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendTransport 通过 Resend HTTP API 发送邮件
type ResendTransport struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewResendTransport 创建 Resend 邮件通道
func NewResendTransport(baseURL, apiKey string) *ResendTransport {
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}
	return &ResendTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (r *ResendTransport) Send(ctx context.Context, msg MailMessage) (*DeliveryReceipt, error) {
	payload, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Resend 失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	var result resendResponse
	_ = json.Unmarshal(body, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if result.Message != "" {
			return nil, fmt.Errorf("Resend 返回错误 (%d): %s", resp.StatusCode, result.Message)
		}
		return nil, fmt.Errorf("Resend 返回错误 (%d): %s", resp.StatusCode, string(body))
	}

	return newReceipt(config.TransportResend, result.ID), nil
}
