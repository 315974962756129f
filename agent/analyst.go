package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/networth"
	"github.com/etnz/networth/docs"
	"github.com/etnz/networth/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used by the experts.
const DefaultModel = "gemini-2.5-pro"

// newFacilitator creates the expert that talks to the user and delegates to experts.
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of answering the user's request.

			The experts available as Tools are dedicated to you and keep the context of your previous questions.
			The user comes to understand their net worth: how it is spread across asset types and
			institutions, which deposits or projects are due, and how the markets affect it.

			Devise a plan of questions to ask each expert and come up with the best response.
			Always check the figures with the Analyst before quoting them.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarketWatcher creates an expert grounded on Google Search.
func NewMarketWatcher(model string) *Expert {
	return &Expert{
		Name: "MarketWatcher",
		Description: `This expert follows currencies, precious metals and crypto markets and the news about
		financial institutions. Ask the MarketWatcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of the currency, commodity and crypto markets. You leverage Google Search to
			ground your assertions. You relate the latest news to the user's request.
			`}}},
		},
	}
}

// NewAnalyst creates the expert that reads the user's dashboard.
func NewAnalyst(model string, d *networth.Dashboard, rates networth.ExchangeRates) *Expert {
	lib := Tools(d, rates)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the user's net worth dashboard: totals, asset
		distribution, entity distribution and ongoing projects, and converts amounts between currencies.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the analyst of the user's net worth. Use the Tools to read the figures, never guess them.
			All figures are in ` + d.Currency + ` unless stated otherwise.

			` + must(docs.GetTopic("networth")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a Function with a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, args map[string]any) (string, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	out, err := f.Func(ctx, args)
	if err != nil {
		return errorResponse(id, f.Decl.Name, err)
	}
	return &genai.FunctionResponse{ID: id, Name: f.Decl.Name, Response: map[string]any{"output": out}}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// markdownTool declares a tool without parameters returning markdown.
func markdownTool(name, description string, render func() string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown document."},
		},
		Func: func(context.Context, map[string]any) (string, error) { return render(), nil },
	}
}

// Tools returns the functions reading d. rates serve the conversions.
func Tools(d *networth.Dashboard, rates networth.ExchangeRates) []*Func {
	return []*Func{
		markdownTool("net_worth", "Totals of the dashboard: net worth, assets, liabilities, pending flows and real estate.",
			func() string { return renderer.NetWorthMarkdown(d) }),
		markdownTool("asset_distribution", "Value and share of each asset type, largest first.",
			func() string { return renderer.AssetDistributionMarkdown(d.AssetDistribution, d.Currency) }),
		markdownTool("entity_distribution", "Value and share held at each institution, largest first.",
			func() string { return renderer.EntityDistributionMarkdown(d.EntityDistribution, d.Currency) }),
		projectsTool(d),
		convertTool(rates),
	}
}

func projectsTool(d *networth.Dashboard) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "projects",
			Description: "Ongoing deposits, real estate crowdfunding and factoring projects, the closest maturity first.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"within_days": {
						Type:        genai.TypeInteger,
						Description: "Only list projects maturing within this number of days. Late projects are always listed.",
					},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of projects."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			projects := d.Projects
			if v, ok := args["within_days"]; ok {
				days, ok := v.(float64)
				if !ok {
					return "", fmt.Errorf("argument 'within_days' is not a number but %T", v)
				}
				projects = networth.DueWithin(d.Projects, d.On, int(days))
			}
			return renderer.ProjectsMarkdown(projects, d.On, d.Currency), nil
		},
	}
}

func convertTool(rates networth.ExchangeRates) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "convert",
			Description: "Converts an amount of a currency, crypto symbol or commodity symbol (XAU, XAG, XPT, XPD in troy ounces) into a currency.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount": {Type: genai.TypeString, Description: "The amount, as a decimal number."},
					"from":   {Type: genai.TypeString, Description: "Currency code or symbol of the amount."},
					"to":     {Type: genai.TypeString, Description: "Target currency code."},
				},
				Required: []string{"amount", "from", "to"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The converted amount with its currency."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			var amount networth.Decimal
			switch v := args["amount"].(type) {
			case string:
				amount = networth.ParseDecimal(v)
			case float64:
				amount = networth.D(v)
			default:
				return "", fmt.Errorf("argument 'amount' must be a number, got %T", v)
			}
			if !amount.IsFinite() {
				return "", fmt.Errorf("argument 'amount' is not a valid number")
			}
			from, _ := args["from"].(string)
			to, _ := args["to"].(string)
			from, to = strings.ToUpper(from), strings.ToUpper(to)
			if to == "" {
				return "", fmt.Errorf("argument 'to' is required")
			}
			if _, ok := rates.Resolve(to, from); !ok && from != to {
				return "", fmt.Errorf("no rate from %s to %s", from, to)
			}
			v := networth.Convert(amount, from, to, rates)
			return networth.Money(v, to).String(), nil
		},
	}
}
