package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/renderer"
	"google.golang.org/genai"
)

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the shop owner's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs a small shop: they sell and buy products, track stock, and lend or owe money to
			their customers and suppliers. They ask about their business.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Answer in the language of the user, in Markdown. Never invent figures: get them from the experts.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewMarket returns the expert on market prices and trends.
func NewMarket(model string) *Expert {
	return &Expert{
		Name: "Market",
		Description: `This is the market expert,
		well aware of the current retail and wholesale prices of consumer goods in Vietnam,
		of the latest product releases and of the shopping trends.
		Ask the Market whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert of the retail market. You can search and find about anything related to
			products, brands, suppliers and prices. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
			`),
		},
	}
}

// NewAnalyst returns the expert reading the books of l. It never changes
// them.
func NewAnalyst(l *smartbiz.Ledger, model, cur string) *Expert {
	lib := Tools(l, cur)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the shop's books:
		products and stock levels, sales, purchases, cash received and paid, and the debts
		of customers and to suppliers. Ask the Analyst for any figure about the shop.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the accountant of a small shop. You know how to use the Tools to extract
			relevant information about the shop's stock, sales, purchases, cash and debts.
			You are part of a team of experts, yours is everything about the shop's books. They might ask
			you questions with approximative product or contact names: search for them.

			Amounts are in ` + cur + `. Answer with the figures you got from the Tools, in Markdown.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// output is the response holding a Markdown document.
func output(id, name, doc string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": doc}}
}

func noArgs(name, description string) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A Markdown document.",
		},
	}
}

func termArg(name, description, term string) *genai.FunctionDeclaration {
	d := noArgs(name, description)
	d.Parameters = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"term": {Type: genai.TypeString, Description: term},
		},
	}
	return d
}

// Tools returns the functions reading l.
func Tools(l *smartbiz.Ledger, cur string) []Function {
	return []Function{
		&Func{
			Decl: noArgs("Dashboard", `Dashboard returns the overview of the books: sales and purchase totals,
			gross margin, cash received and paid, debts of customers and to suppliers,
			stock alerts and the most recent transactions.`),
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, "Dashboard", renderer.DashboardMarkdown(l.Dashboard(), cur))
			},
		},
		&Func{
			Decl: termArg("Products", `Products lists the products with their SKU, category, cost and sale prices
			and stock. Products at or below their minimum stock are in bold.`,
				"Part of the name or SKU of the products, all products when empty."),
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				term, _ := args["term"].(string)
				return output(id, "Products", renderer.InventoryMarkdown(l.SearchProducts(term), cur))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Debts",
				Description: `Debts lists the customers who owe money to the shop, or the suppliers the shop owes money to.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type": {
							Type:        genai.TypeString,
							Enum:        []string{string(smartbiz.Customer), string(smartbiz.Supplier)},
							Description: "CUSTOMER for money owed to the shop, SUPPLIER for money the shop owes.",
						},
					},
					Required: []string{"type"},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A Markdown table."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				s, _ := args["type"].(string)
				ct, err := smartbiz.ParseContactType(s)
				if err != nil {
					return failure(id, "Debts", err)
				}
				return output(id, "Debts", renderer.DebtsMarkdown(l.Debts(ct, ""), cur))
			},
		},
		&Func{
			Decl: termArg("History", `History returns the card of a customer or supplier with all their transactions.`,
				"Part of the name or phone of the contact."),
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				term, _ := args["term"].(string)
				found := l.SearchContacts("", term)
				switch len(found) {
				case 0:
					return failure(id, "History", fmt.Errorf("no contact matches %q", term))
				case 1:
					c := found[0]
					return output(id, "History", renderer.HistoryMarkdown(c, l.History(c.ID), cur))
				}
				var names []string
				for _, c := range found {
					names = append(names, c.Name)
				}
				return failure(id, "History", fmt.Errorf("%q matches several contacts: %s", term, strings.Join(names, ", ")))
			},
		},
		&Func{
			Decl: noArgs("Finance", `Finance returns the cash journal: every transaction with the cash received and paid.`),
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, "Finance", renderer.FinanceMarkdown(l.Finance(), "", cur))
			},
		},
	}
}
