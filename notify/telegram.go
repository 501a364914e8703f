// Package notify sends order notifications to a Telegram chat.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/config"
	"github.com/rs/zerolog/log"
)

// DefaultAPI is the Telegram Bot API endpoint.
const DefaultAPI = "https://api.telegram.org"

// TestMessage is sent by Test.
const TestMessage = "✅ *KẾT NỐI THÀNH CÔNG!*\nSmartBiz ERP đã liên kết với Bot của bạn.\nMọi thông báo đơn hàng sẽ được gửi tại đây."

// Telegram posts a message to a chat for every sale and purchase. It
// implements smartbiz.Notifier.
type Telegram struct {
	Config   config.Telegram
	Currency string
	// API is the Bot API endpoint, DefaultAPI when empty.
	API    string
	Client *http.Client
	// Location of the dates in messages, time.Local when nil.
	Location *time.Location
}

// New returns a notifier for cfg.
func New(cfg config.Telegram, currency string) *Telegram {
	return &Telegram{Config: cfg, Currency: currency}
}

// Notify sends the message of a sale or purchase. It does nothing when
// notifications are disabled or tx is of another type. A notifier enabled
// without a token or a chat id logs a warning and sends nothing.
func (t *Telegram) Notify(ctx context.Context, tx smartbiz.Transaction) error {
	if !t.Config.Enabled {
		return nil
	}
	if !t.Config.Ready() {
		log.Warn().Str("tx", tx.ID).Msg("telegram is enabled but the bot token or chat id is missing")
		return nil
	}
	if tx.Type != smartbiz.Sale && tx.Type != smartbiz.Purchase {
		return nil
	}
	if err := t.send(ctx, t.Config.ChatID, t.Message(tx)); err != nil {
		return fmt.Errorf("cannot notify %s: %w", tx.ID, err)
	}
	log.Info().Str("tx", tx.ID).Str("chat", t.Config.ChatID).Msg("telegram notification sent")
	return nil
}

// Test sends TestMessage with the configured token and chat id, whether or
// not notifications are enabled.
func (t *Telegram) Test(ctx context.Context) error {
	if !t.Config.Ready() {
		return errors.New("bot token and chat id are required")
	}
	return t.send(ctx, t.Config.ChatID, TestMessage)
}

// Message formats the notification of tx in Telegram Markdown.
func (t *Telegram) Message(tx smartbiz.Transaction) string {
	emoji, title := "🔔", "ĐƠN BÁN HÀNG MỚI"
	if tx.Type == smartbiz.Purchase {
		emoji, title = "📦", "ĐƠN NHẬP HÀNG MỚI"
	}
	loc := t.Location
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n", emoji, title)
	b.WriteString("━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "🆔 *Mã:* #%s\n", tx.ID)
	fmt.Fprintf(&b, "👤 *Đối tác:* %s\n", tx.ContactName)
	fmt.Fprintf(&b, "📅 *Ngày:* %s\n\n", tx.Date.In(loc).Format("15:04:05 2/1/2006"))
	b.WriteString("🛒 *Sản phẩm:*")
	for _, it := range tx.Items {
		fmt.Fprintf(&b, "\n🔹 %s | SL: %d", it.Name, it.Quantity)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "💰 *Tổng tiền:* %s\n", smartbiz.Format(tx.Total, t.Currency))
	fmt.Fprintf(&b, "✅ *Đã trả:* %s\n", smartbiz.Format(tx.PaidAmount, t.Currency))
	fmt.Fprintf(&b, "⚠️ *Còn nợ:* %s\n", smartbiz.Format(tx.DebtAmount, t.Currency))
	if tx.Note != "" {
		fmt.Fprintf(&b, "\n📝 *Ghi chú:* %s\n", tx.Note)
	}
	b.WriteString("━━━━━━━━━━━━━━━\n")
	b.WriteString("🚀 _Hệ thống SmartBiz ERP_")
	return b.String()
}

type sendMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// send posts text to chat. A reply with ok set to false is an error holding
// the API description.
func (t *Telegram) send(ctx context.Context, chat, text string) error {
	api := t.API
	if api == "" {
		api = DefaultAPI
	}
	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	body, err := json.Marshal(sendMessage{ChatID: chat, Text: text, ParseMode: "Markdown"})
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(api, "/"), t.Config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		// the token is part of the URL
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("cannot reach telegram: %w", err)
	}
	defer resp.Body.Close()

	var r apiResponse
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("cannot decode telegram reply (%s): %w", resp.Status, err)
	}
	if !r.OK {
		return fmt.Errorf("telegram: %s", r.Description)
	}
	return nil
}
