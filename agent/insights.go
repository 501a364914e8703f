package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/etnz/smartbiz"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// Fallback is the insight returned when the model cannot be reached.
const Fallback = "Không thể kết nối với AI để lấy phân tích lúc này."

// InsightTransactions is the number of recent transactions sent to the model.
const InsightTransactions = 5

// Generator generates content from a prompt. *genai.Models is a Generator.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type stockLine struct {
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
	Min   int64  `json:"min"`
}

type txLine struct {
	Type  smartbiz.TransactionType `json:"type"`
	Total decimal.Decimal          `json:"total"`
}

type debtLine struct {
	Name    string               `json:"name"`
	Type    smartbiz.ContactType `json:"type"`
	Balance decimal.Decimal      `json:"balance"`
}

// InsightPrompt returns the prompt analysing s: the stock of every product,
// the most recent transactions and the contacts with a positive balance.
func InsightPrompt(s smartbiz.Snapshot) string {
	stock := make([]stockLine, 0, len(s.Products))
	for _, p := range s.Products {
		stock = append(stock, stockLine{p.Name, p.Stock, p.MinStock})
	}
	recent := make([]txLine, 0, InsightTransactions)
	for _, tx := range s.Transactions[:min(InsightTransactions, len(s.Transactions))] {
		recent = append(recent, txLine{tx.Type, tx.Total})
	}
	debts := []debtLine{}
	for _, c := range s.Contacts {
		if c.Balance.IsPositive() {
			debts = append(debts, debtLine{c.Name, c.Type, c.Balance})
		}
	}

	var b strings.Builder
	b.WriteString("Dựa trên dữ liệu doanh nghiệp sau, hãy đưa ra phân tích ngắn gọn (tối đa 3-4 ý) về:\n")
	b.WriteString("1. Mặt hàng nào đang bán chạy hoặc cần nhập thêm (cảnh báo tồn kho).\n")
	b.WriteString("2. Tình hình dòng tiền và công nợ (ai nợ nhiều, rủi ro gì).\n")
	b.WriteString("3. Gợi ý chiến lược kinh doanh cho tuần tới.\n\n")
	b.WriteString("Dữ liệu sản phẩm: " + compact(stock) + "\n")
	b.WriteString("Dữ liệu giao dịch gần đây: " + compact(recent) + "\n")
	b.WriteString("Dữ liệu công nợ: " + compact(debts) + "\n\n")
	b.WriteString("Hãy trả lời bằng Tiếng Việt, định dạng Markdown chuyên nghiệp.")
	return b.String()
}

func compact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Insights asks model for a business analysis of s. Any failure is logged
// and Fallback returned.
func Insights(ctx context.Context, g Generator, model string, s smartbiz.Snapshot) string {
	if g == nil {
		log.Warn().Msg("no AI client configured, set GEMINI_API_KEY")
		return Fallback
	}
	resp, err := g.GenerateContent(ctx, model, genai.Text(InsightPrompt(s)), nil)
	if err == nil && resp.Text() == "" {
		err = errors.New("empty answer")
	}
	if err != nil {
		log.Error().Err(err).Str("model", model).Msg("cannot get insights")
		return Fallback
	}
	return resp.Text()
}

// NewClient returns a Gemini client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}
