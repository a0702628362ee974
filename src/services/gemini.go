package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/lib"
	"github.com/lmsbuddy/backend/src/models"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// AIAssistant is the capability surface of the generative-AI collaborator.
// Everything behind it is an opaque external service.
type AIAssistant interface {
	Summarize(ctx context.Context, messages []string) (string, error)
	GenerateQuiz(ctx context.Context, subject, complexity string, count int) (*Quiz, error)
	SuggestBuddies(ctx context.Context, current models.User, directory []models.User) ([]BuddySuggestion, error)
	AssessRisk(ctx context.Context, input RiskInput) (*RiskAssessment, error)
}

type Quiz struct {
	Title     string     `json:"title"`
	Subject   string     `json:"subject"`
	Questions []Question `json:"questions"`
}

type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type BuddySuggestion struct {
	UserId      string `json:"userId"`
	MatchReason string `json:"matchReason"`
}

type RiskInput struct {
	Name                 string  `json:"name"`
	Attendance           float64 `json:"attendance"`
	AssignmentScore      float64 `json:"assignmentScore"`
	InternalsScore       float64 `json:"internalsScore"`
	ExtraActivitiesScore float64 `json:"extraActivitiesScore"`
	PreviousGPA          float64 `json:"previousGPA"`
}

type RiskAssessment struct {
	StudentName        string   `json:"studentName"`
	RiskLevel          string   `json:"riskLevel"` // Low, Moderate, High
	DropoutProbability float64  `json:"dropoutProbability"`
	Factors            []string `json:"factors"`
	Recommendations    []string `json:"recommendations"`
	ReviewIntervalDays int      `json:"reviewIntervalDays"`
}

// GeminiClient talks to the Gemini REST API. One bounded retry, explicit
// per-request timeout.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate submits a prompt and returns the raw text of the first candidate
func (g *GeminiClient) generate(ctx context.Context, prompt string, jsonOutput bool) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if jsonOutput {
		reqBody.GenerationConfig = &geminiGenerationConfig{ResponseMimeType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second):
			}
		}

		text, err := g.doRequest(ctx, url, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		lib.Logger.Warn("Gemini request failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	return "", lastErr
}

func (g *GeminiClient) doRequest(ctx context.Context, url string, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini: malformed response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// Summarize condenses a study discussion into key concepts and open questions
func (g *GeminiClient) Summarize(ctx context.Context, messages []string) (string, error) {
	if len(messages) == 0 {
		return "No messages to summarize.", nil
	}

	prompt := "Summarize the following study discussion between two students. " +
		"Identify key concepts discussed and any outstanding questions:\n\n" +
		strings.Join(messages, "\n")

	return g.generate(ctx, prompt, false)
}

// GenerateQuiz asks the model for an MCQ quiz and validates its shape
func (g *GeminiClient) GenerateQuiz(ctx context.Context, subject, complexity string, count int) (*Quiz, error) {
	prompt := fmt.Sprintf(`Generate a high-quality, unique MCQ quiz for a student.
Subject: %s
Complexity Level: %s
Number of Questions: %d

The quiz must contain exactly %d unique questions.
CRITICAL: Ensure that every question covers a different aspect or sub-topic of the subject to avoid redundancy.
Each question must have exactly 4 plausible options and one clearly correct answer index (0-3).
The distractors (wrong options) should be challenging and conceptually relevant.

Return the response strictly as a JSON object with this structure:
{"title": "A descriptive title for the quiz", "subject": "%s", "questions": [{"text": "The question text", "options": ["A", "B", "C", "D"], "correctAnswer": 0}]}`,
		subject, complexity, count, count, subject)

	text, err := g.generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var quiz Quiz
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return nil, fmt.Errorf("gemini: malformed quiz JSON: %w", err)
	}

	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("gemini: quiz has no questions")
	}
	for _, q := range quiz.Questions {
		if q.Text == "" || len(q.Options) != 4 || q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return nil, fmt.Errorf("gemini: quiz question failed validation")
		}
	}

	return &quiz, nil
}

// SuggestBuddies recommends study partners from the directory for the current
// user. Failures degrade to an empty suggestion list.
func (g *GeminiClient) SuggestBuddies(ctx context.Context, current models.User, directory []models.User) ([]BuddySuggestion, error) {
	type candidate struct {
		Id        string   `json:"id"`
		Name      string   `json:"name"`
		Dept      string   `json:"department"`
		Grade     string   `json:"gradeOrClass"`
		Courses   []string `json:"courses"`
		Skills    []string `json:"skills"`
		Interests []string `json:"interests"`
	}

	candidates := make([]candidate, 0, len(directory))
	for _, u := range directory {
		if u.Id == current.Id {
			continue
		}
		candidates = append(candidates, candidate{
			Id:        u.Id.Hex(),
			Name:      u.Name,
			Dept:      u.Department,
			Grade:     u.GradeOrClass,
			Courses:   u.EnrolledCourses,
			Skills:    u.Skills,
			Interests: u.Interests,
		})
	}

	directoryData, err := json.Marshal(candidates)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`As an AI matching assistant for an LMS Buddy System, analyze the current user's profile and recommend the top 3 study buddies from the directory.

Current User:
- Name: %s
- Department: %s
- Grade/Class: %s
- Courses: %s
- Skills: %s
- Interests: %s

Directory:
%s

Provide the response as a JSON array of objects with "userId" and a brief "matchReason" for each.`,
		current.Name, current.Department, current.GradeOrClass,
		strings.Join(current.EnrolledCourses, ", "),
		strings.Join(current.Skills, ", "),
		strings.Join(current.Interests, ", "),
		string(directoryData))

	text, err := g.generate(ctx, prompt, true)
	if err != nil {
		return []BuddySuggestion{}, err
	}

	var suggestions []BuddySuggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return []BuddySuggestion{}, fmt.Errorf("gemini: malformed suggestions JSON: %w", err)
	}

	return suggestions, nil
}

// AssessRisk scores academic risk from performance inputs
func (g *GeminiClient) AssessRisk(ctx context.Context, input RiskInput) (*RiskAssessment, error) {
	prompt := fmt.Sprintf(`Analyze this student's academic performance data:
- Name: %s
- Attendance: %.0f%%
- Assignments: %.0f/100
- Internals: %.0f/100
- Extra Activities: %.0f/10
- Previous GPA: %.1f/10

Your persona: AI-powered Academic Risk Predictor Assistant.
Evaluate academic performance risk based ONLY on these inputs.
Additionally, calculate a "dropoutProbability" as a percentage (0-100) based on low attendance, poor internals, and low GPA.

Return JSON format only:
{"studentName": "%s", "riskLevel": "Low | Moderate | High", "dropoutProbability": 0, "factors": ["..."], "recommendations": ["..."], "reviewIntervalDays": 0}`,
		input.Name, input.Attendance, input.AssignmentScore, input.InternalsScore,
		input.ExtraActivitiesScore, input.PreviousGPA, input.Name)

	text, err := g.generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var assessment RiskAssessment
	if err := json.Unmarshal([]byte(text), &assessment); err != nil {
		return nil, fmt.Errorf("gemini: malformed assessment JSON: %w", err)
	}

	return &assessment, nil
}
