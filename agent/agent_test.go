package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/smartbiz"
	"google.golang.org/genai"
)

func TestInsightPrompt(t *testing.T) {
	prompt := InsightPrompt(smartbiz.Seed())
	for _, want := range []string{
		"Dựa trên dữ liệu doanh nghiệp sau",
		`{"name":"MacBook Air M3","stock":3,"min":5}`,
		`Dữ liệu giao dịch gần đây: [{"type":"SALE","total":32000000},{"type":"PURCHASE","total":125000000}]`,
		`{"name":"Nguyễn Văn A","type":"CUSTOMER","balance":1500000}`,
		`{"name":"Công ty NPP Toàn Cầu","type":"SUPPLIER","balance":45000000}`,
		"Hãy trả lời bằng Tiếng Việt",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt does not contain %s:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Trần Thị B") {
		t.Error("prompt lists a contact without debt")
	}
}

func TestInsightPrompt_RecentOnly(t *testing.T) {
	s := smartbiz.Seed()
	tx := s.Transactions[0]
	for range 10 {
		s.Transactions = append(s.Transactions, tx)
	}
	prompt := InsightPrompt(s)
	if got := strings.Count(prompt, `"type":"SALE"`); got != InsightTransactions {
		t.Errorf("prompt has %d sales, want %d", got, InsightTransactions)
	}

	empty := InsightPrompt(smartbiz.Snapshot{})
	if !strings.Contains(empty, "Dữ liệu công nợ: []") {
		t.Errorf("empty prompt = %s", empty)
	}
}

// generator is a fake model.
type generator struct {
	answer string
	err    error
	prompt string
}

func (g *generator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.prompt = contents[0].Parts[0].Text
	if g.err != nil {
		return nil, g.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(g.answer, genai.RoleModel)}},
	}, nil
}

func TestInsights(t *testing.T) {
	testCases := []struct {
		name string
		gen  *generator
		want string
	}{
		{"answer", &generator{answer: "## Phân tích"}, "## Phân tích"},
		{"error", &generator{err: errors.New("quota exceeded")}, Fallback},
		{"empty", &generator{}, Fallback},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Insights(context.Background(), tc.gen, "test-model", smartbiz.Seed())
			if got != tc.want {
				t.Errorf("Insights() = %q, want %q", got, tc.want)
			}
			if tc.gen.prompt != InsightPrompt(smartbiz.Seed()) {
				t.Errorf("prompt = %q", tc.gen.prompt)
			}
		})
	}
	if got := Insights(context.Background(), nil, "test-model", smartbiz.Seed()); got != Fallback {
		t.Errorf("Insights() without client = %q", got)
	}
}

func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "42", Name: name, Args: args})
	if resp.ID != "42" || resp.Name != name {
		t.Errorf("response = %s/%s, want 42/%s", resp.ID, resp.Name, name)
	}
	return resp.Response
}

func TestTools(t *testing.T) {
	l := smartbiz.FromSnapshot(smartbiz.Seed())
	lib := NewLibrary(Tools(l, "VND"))

	testCases := []struct {
		name     string
		function string
		args     map[string]any
		output   string // contained in the output
		err      string // contained in the error
	}{
		{"dashboard", "Dashboard", nil, "# Dashboard", ""},
		{"all products", "Products", map[string]any{}, "MacBook Air M3", ""},
		{"products by name", "Products", map[string]any{"term": "airpods"}, "AirPods Pro 2", ""},
		{"customer debts", "Debts", map[string]any{"type": "CUSTOMER"}, "Nguyễn Văn A", ""},
		{"supplier debts", "Debts", map[string]any{"type": "SUPPLIER"}, "45,000,000 ₫", ""},
		{"invalid debts", "Debts", map[string]any{"type": "friends"}, "", "friends"},
		{"history", "History", map[string]any{"term": "nguyen van a"}, "t1", ""},
		{"history by phone", "History", map[string]any{"term": "0281234567"}, "t2", ""},
		{"unknown contact", "History", map[string]any{"term": "nobody"}, "", "no contact"},
		{"ambiguous contact", "History", map[string]any{"term": "n"}, "", "several contacts"},
		{"finance", "Finance", nil, "Cash Journal", ""},
		{"unknown function", "Delete", nil, "", "unknown function"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, lib, tc.function, tc.args)
			if tc.err != "" {
				msg, _ := resp["error"].(string)
				if !strings.Contains(msg, tc.err) {
					t.Errorf("error = %q, want %q", msg, tc.err)
				}
				return
			}
			out, _ := resp["output"].(string)
			if !strings.Contains(out, tc.output) {
				t.Errorf("output does not contain %q:\n%s", tc.output, out)
			}
		})
	}
}

func TestTools_ReadOnly(t *testing.T) {
	l := smartbiz.FromSnapshot(smartbiz.Seed())
	before := l.Snapshot()
	lib := NewLibrary(Tools(l, "VND"))
	for _, f := range Tools(l, "VND") {
		lib(context.Background(), &genai.FunctionCall{Name: f.Declaration().Name, Args: map[string]any{"term": "a", "type": "CUSTOMER"}})
	}
	after := l.Snapshot()
	if len(after.Transactions) != len(before.Transactions) || after.Products[0].Stock != before.Products[0].Stock {
		t.Error("tools changed the books")
	}
}

func TestExpert(t *testing.T) {
	analyst := NewAnalyst(smartbiz.FromSnapshot(smartbiz.Seed()), "test-model", "VND")
	d := analyst.Declaration()
	if d.Name != "Analyst" || d.Parameters.Required[0] != "question" {
		t.Errorf("declaration = %+v", d)
	}
	if got := len(analyst.Config.Tools[0].FunctionDeclarations); got != 5 {
		t.Errorf("analyst has %d tools, want 5", got)
	}

	resp := analyst.Call(context.Background(), "1", map[string]any{"question": 42})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() with a number = %v, want an error", resp.Response)
	}
	resp = analyst.Call(context.Background(), "2", map[string]any{"question": "sales?"})
	if msg, _ := resp.Response["error"].(string); !strings.Contains(msg, "not started") {
		t.Errorf("Call() before Start = %v, want an error", resp.Response)
	}

	f := newFacilitator("test-model", analyst, NewMarket("test-model"))
	names := []string{}
	for _, d := range f.Config.Tools[0].FunctionDeclarations {
		names = append(names, d.Name)
	}
	if strings.Join(names, ",") != "Analyst,Market" {
		t.Errorf("facilitator experts = %v", names)
	}
}

func TestText(t *testing.T) {
	c := &genai.Content{Parts: []*genai.Part{
		{Text: "thinking", Thought: true},
		{Text: "## Doanh thu\n"},
		{FunctionCall: &genai.FunctionCall{Name: "Dashboard"}},
		{Text: "32,000,000 ₫"},
	}}
	if got, want := text(c), "## Doanh thu\n32,000,000 ₫"; got != want {
		t.Errorf("text() = %q, want %q", got, want)
	}
}
