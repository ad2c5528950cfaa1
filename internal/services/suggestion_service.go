package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

var (
	ErrSuggestionsNotConfigured = errors.New("task suggestions are not configured")
	ErrSuggestionTextRequired   = errors.New("text is required")
	ErrSuggestionFailed         = errors.New("failed to generate suggestions")
	ErrNoSuggestions            = errors.New("no usable task suggestions were generated")
)

// TaskDraft is an unpersisted task suggestion
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// SuggestionRequest carries the project context and the user's notes
type SuggestionRequest struct {
	ProjectName        string
	ProjectDescription string
	Text               string
	Now                time.Time
}

// TaskGenerator turns free text into raw task drafts
type TaskGenerator interface {
	GenerateTasks(ctx context.Context, req SuggestionRequest) ([]TaskDraft, error)
}

// SuggestionService drafts tasks for a project owned by the actor
type SuggestionService struct {
	projects  *ProjectService
	generator TaskGenerator
}

// NewSuggestionService creates a SuggestionService. A nil generator
// disables suggestions.
func NewSuggestionService(projects *ProjectService, generator TaskGenerator) *SuggestionService {
	return &SuggestionService{
		projects:  projects,
		generator: generator,
	}
}

// Suggest returns task drafts for the project. Nothing is persisted.
func (s *SuggestionService) Suggest(ctx context.Context, actorID, projectID uint64, text string) ([]TaskDraft, error) {
	project, err := s.projects.Get(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrSuggestionTextRequired
	}
	if s.generator == nil {
		return nil, ErrSuggestionsNotConfigured
	}

	now := time.Now()
	drafts, err := s.generator.GenerateTasks(ctx, SuggestionRequest{
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
		Text:               text,
		Now:                now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}

	valid := make([]TaskDraft, 0, len(drafts))
	cutoff := now.Add(-24 * time.Hour)
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" {
			continue
		}
		if draft.DueDate != nil && draft.DueDate.Before(cutoff) {
			draft.DueDate = nil
		}
		valid = append(valid, draft)
		if len(valid) == constants.MaxSuggestedTasks {
			break
		}
	}

	if len(valid) == 0 {
		return nil, ErrNoSuggestions
	}

	return valid, nil
}

// OpenAIGenerator implements TaskGenerator with the chat completion API
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given API key and model
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return NewOpenAIGeneratorWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIGeneratorWithConfig allows pointing the client at another base URL
func NewOpenAIGeneratorWithConfig(cfg openai.ClientConfig, model string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

type generatedTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// GenerateTasks asks the model for a JSON array of tasks
func (g *OpenAIGenerator) GenerateTasks(ctx context.Context, req SuggestionRequest) ([]TaskDraft, error) {
	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks for the project below from the notes.

Current time: %s
Project: %s
Project description: %s

Notes:
%s

Respond with a JSON array only, no commentary:
[
  {
    "title": "short task title",
    "description": "task details",
    "priority": "low, medium or high",
    "due_date": "ISO 8601 date (e.g. 2025-10-28T23:59:59Z) or null when no deadline is stated"
  }
]

Rules:
- Return [] when there are no tasks
- Convert relative deadlines ("tomorrow", "next week") to absolute dates`,
		req.Now.Format(time.RFC3339), req.ProjectName, req.ProjectDescription, req.Text)

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseGeneratedTasks(resp.Choices[0].Message.Content)
}

// parseGeneratedTasks decodes the model output, tolerating a markdown code fence
func parseGeneratedTasks(content string) ([]TaskDraft, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw []generatedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	drafts := make([]TaskDraft, 0, len(raw))
	for _, r := range raw {
		draft := TaskDraft{
			Title:       r.Title,
			Description: r.Description,
			Priority:    r.Priority,
		}
		if r.DueDate != nil {
			// An unparseable deadline is dropped rather than failing the batch
			if due, err := utils.ParseDate(*r.DueDate); err == nil {
				draft.DueDate = &due
			}
		}
		drafts = append(drafts, draft)
	}

	return drafts, nil
}
