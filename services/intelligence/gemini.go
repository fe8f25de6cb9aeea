package intelligence

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const summaryPrompt = `You are a clinical assistant. Summarize the following medical
document for the patient in plain language. List key findings, medications and
follow-up actions. Do not invent information that is not in the document.

Document:
%s`

// AIService produces patient-readable summaries of medical documents.
type AIService interface {
	SummarizeDocument(ctx context.Context, documentText string) (string, error)
}

// GeminiService is the hosted-LLM implementation of AIService.
type GeminiService struct {
	model *genai.GenerativeModel
}

// NewGeminiService creates a Gemini client for document analysis.
func NewGeminiService(apiKey string) (*GeminiService, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiService{model: client.GenerativeModel("models/gemini-1.5-pro")}, nil
}

// SummarizeDocument sends the document text through the summary prompt.
func (g *GeminiService) SummarizeDocument(ctx context.Context, documentText string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(summaryPrompt, documentText)))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
