package agent

import (
	"context"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/docs"
	"github.com/etnz/finance/renderer"
	"google.golang.org/genai"
)

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and of answering the user's request.

			The user runs a small business and reviews its financial statements every quarter.
			Learn about the experts available in the Tools and ask them questions, they keep the
			context of your previous questions.

			Devise a plan of questions to ask to each expert and answer with a short markdown text.
			Never invent a figure: every number you give comes from an expert.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// Workbook is what the analyst knows about the current quarter.
type Workbook struct {
	Quarter    date.Quarter
	Statements *finance.Statements
	Ratios     *finance.RatioReport
	Trends     []finance.RatioTrend // nil when no history is available.
}

// Tools returns the functions that read w.
func (w *Workbook) Tools() []Function {
	noArgs := &genai.Schema{Type: genai.TypeObject}
	markdown := &genai.Schema{Type: genai.TypeString, Description: "A markdown document."}
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Statements",
				Description: "Statements returns the Profit and Loss account and the Balance Sheet of the quarter.",
				Parameters:  noArgs,
				Response:    markdown,
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return success(id, "Statements", renderer.StatementsMarkdown(w.Statements))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Ratios",
				Description: "Ratios returns the six financial ratios of the quarter, their reading, the distress signals and the comparison with the benchmarks.",
				Parameters:  noArgs,
				Response:    markdown,
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return success(id, "Ratios", renderer.RatiosMarkdown(w.Ratios))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Trends",
				Description: "Trends returns the evolution of every ratio over the last recorded quarters.",
				Parameters:  noArgs,
				Response:    markdown,
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				if w.Trends == nil {
					return failure(id, "Trends", fmt.Errorf("no history is recorded for %s", w.Quarter))
				}
				return success(id, "Trends", renderer.TrendsMarkdown(w.Trends))
			},
		},
		Topic,
	}
}

// Topic reads the documentation of fin.
var Topic = &Func{
	Decl: &genai.FunctionDeclaration{
		Name:        "Topic",
		Description: "Topic returns a documentation topic of fin: how accounts, ratios and trends are defined.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {
					Type:        genai.TypeString,
					Description: "The topic name, one of " + topicList() + ", or * for all.",
				},
			},
			Required: []string{"topic"},
		},
		Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown of the topic."},
	},
	Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
		topic, ok := args["topic"].(string)
		if !ok {
			return failure(id, "Topic", fmt.Errorf("argument 'topic' is %T, expected a string", args["topic"]))
		}
		content, err := docs.GetTopic(topic)
		if err != nil {
			return failure(id, "Topic", err)
		}
		return success(id, "Topic", content)
	},
}

func topicList() string {
	topics, _ := docs.GetAllTopics()
	return fmt.Sprint(topics)
}

// NewAnalyst returns the expert that reads the quarter's figures in w.
func NewAnalyst(model string, w *Workbook) *Expert {
	lib := w.Tools()
	return &Expert{
		Name: "Analyst",
		Description: `The Analyst knows the user's financial statements of ` + w.Quarter.String() + `,
		the financial ratios computed from them, their benchmarks and their trend.
		Ask the Analyst for any figure about the business.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are a financial analyst in charge of the user's quarterly statements.
			Use the Tools to read the statements, the ratios and their trends, and the
			documentation when you need a definition. Quote the figures as they are given.
		`),
		},
		Library: NewLibrary(lib),
	}
}

// NewAdvisor returns the expert that grounds its answers with Google Search,
// for industry averages and general business advice.
func NewAdvisor(model string) *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `The Advisor is a business consultant aware of industry averages and good practices.
		Ask the Advisor how a figure compares with the industry, or what could improve it.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a consultant for small businesses. Leverage Google Search to ground your
			assertions, and name the source of any industry figure you give.
		`),
		},
	}
}

// Func implements a Function with a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}
