package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Expert is a chat with a model specialised by its system instruction.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start creates the chat session of e.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Started reports whether the chat session exists.
func (e *Expert) Started() bool { return e.chat != nil }

// Ask sends parts to the expert and returns its text answer, serving its
// function calls from the Library until it answers.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	if e.chat == nil {
		return "", fmt.Errorf("expert %s is not started", e.Name)
	}
	for {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no response from expert %s", e.Name)
		}

		var calls []*genai.Part
		var text strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			if p.FunctionCall != nil {
				if e.Library == nil {
					return "", fmt.Errorf("expert %s cannot make function calls", e.Name)
				}
				log.Debug().Str("expert", e.Name).Str("function", p.FunctionCall.Name).Msg("function call")
				calls = append(calls, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
				continue
			}
			text.WriteString(p.Text)
		}
		if len(calls) == 0 {
			return text.String(), nil
		}
		parts = calls
	}
}

// Declaration declares e as a function of the facilitator.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The expert's answer.",
		},
	}
}

// Call asks the question in args to e.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return failure(id, e.Name, fmt.Errorf("argument 'question' is %T, expected a string", args["question"]))
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return failure(id, e.Name, fmt.Errorf("asking %s: %w", e.Name, err))
	}
	log.Debug().Str("expert", e.Name).Str("question", question).Str("answer", answer).Msg("expert answered")
	return success(id, e.Name, answer)
}
