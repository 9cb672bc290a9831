package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const motivationPrompt = "Give me a short, powerful, and unique motivational quote for a college student aiming to be a topper. Keep it under 20 words."

// Question is one multiple-choice item as returned by the model.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// contentGenerator is the subset of *genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	models contentGenerator
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{models: client.Models, model: model}, nil
}

// GenerateQuiz asks for count multiple-choice questions on subject, using a
// JSON response schema so the reply decodes straight into []Question.
func (c *Client) GenerateQuiz(ctx context.Context, subject string, count int) ([]Question, error) {
	prompt := fmt.Sprintf(
		"Generate %d multiple choice questions for the subject: %s. Each question should have 4 options and one correct answer. Provide an explanation for the correct answer.",
		count, subject,
	)

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   quizSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate quiz: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, errors.New("empty quiz response from Gemini")
	}

	var questions []Question
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, fmt.Errorf("failed to decode quiz response: %w", err)
	}
	return questions, nil
}

// Motivation returns a short motivational quote.
func (c *Client) Motivation(ctx context.Context) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(motivationPrompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate quote: %w", err)
	}

	quote := strings.TrimSpace(resp.Text())
	if quote == "" {
		return "", errors.New("empty quote response from Gemini")
	}
	return quote, nil
}

func quizSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString},
				"options": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"correctAnswer": {
					Type:        genai.TypeInteger,
					Description: "Index of the correct option (0-3)",
				},
				"explanation": {Type: genai.TypeString},
			},
			Required: []string{"question", "options", "correctAnswer", "explanation"},
		},
	}
}
