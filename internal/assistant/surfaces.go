// internal/assistant/surfaces.go
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "skillpulse/internal/errors"
	"skillpulse/internal/feedback"
	"skillpulse/internal/model"
	"skillpulse/internal/store"
)

const interviewQuestionsInstruction = "Generate 8-10 technical interview questions based on the languages, " +
	"frameworks, and technologies found in my repositories. Include questions about data structures, " +
	"algorithms, system design, and technology-specific topics. Vary the difficulty levels from junior to senior."

const projectIdeasInstruction = "Suggest 4-6 concrete project ideas based on my existing repositories and " +
	"skill set. Each project should build upon my current technologies, challenge me to learn complementary " +
	"skills, be practical and portfolio-worthy, and match my current experience level. Include brief " +
	"descriptions of what each project would involve."

const startInterviewInstruction = "Start a technical interview with me. Ask me one technical question based " +
	"on my repositories. Make it conversational and wait for my answer before asking follow-up questions."

const continueInterviewInstruction = "Continue this technical interview. Here's the conversation so far:\n\n%s\n\n" +
	"Based on the candidate's last answer, ask a relevant follow-up question or explore a related technical " +
	"topic from their repositories. Keep it conversational and engaging."

const codeReviewInstruction = `Analyze my repositories and provide detailed feedback on code quality. Focus on:

1. **Code Structure & Architecture**: Evaluate project organization, file structure, and architectural patterns
2. **Design Patterns**: Identify patterns used and suggest improvements
3. **Best Practices**: Review adherence to language/framework best practices
4. **Code Quality**: Comment on readability, maintainability, and documentation
5. **Security**: Highlight potential security concerns
6. **Performance**: Suggest performance optimization opportunities

Format your response with clear categories and mark positive aspects with ✅ and areas for improvement with ⚠️.`

// Service exposes the interaction surfaces. Each surface sends a fixed or
// templated instruction through the gateway, grounded on the user's stored
// repository snapshot. The service holds no conversation state.
type Service struct {
	store      store.Store
	gateway    Completer
	classifier *feedback.Classifier
	logger     *slog.Logger
}

// NewService creates the assistant service.
func NewService(st store.Store, gateway Completer, logger *slog.Logger) *Service {
	return &Service{
		store:      st,
		gateway:    gateway,
		classifier: feedback.DefaultClassifier(),
		logger:     logger,
	}
}

// answer loads the user's snapshot, assembles the context document and sends
// the instruction. With zero repositories it returns the fixed guidance
// answer and never calls the completion endpoint.
func (s *Service) answer(ctx context.Context, userID, instruction string) (string, error) {
	repos, err := s.store.ListRepositories(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load repositories: %w", err)
	}

	if len(repos) == 0 {
		return NoRepositoriesAnswer, nil
	}
	s.logger.Debug("Assembled assistant context", "user_id", userID, "repos", len(repos))

	return s.gateway.Complete(ctx, BuildContext(repos), instruction)
}

// Ask answers a free-form question about the user's repositories.
func (s *Service) Ask(ctx context.Context, userID, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", &apperrors.ValidationError{Field: "query"}
	}
	return s.answer(ctx, userID, query)
}

// InterviewQuestions generates a question set from the user's tech stack.
func (s *Service) InterviewQuestions(ctx context.Context, userID string) (string, error) {
	return s.answer(ctx, userID, interviewQuestionsInstruction)
}

// ProjectIdeas suggests portfolio projects building on the user's stack.
func (s *Service) ProjectIdeas(ctx context.Context, userID string) (string, error) {
	return s.answer(ctx, userID, projectIdeasInstruction)
}

// MockInterview advances an interview. With no prior turns it opens the
// interview; otherwise the full turn history is re-serialized into the
// instruction, since the assistant side has no session concept.
func (s *Service) MockInterview(ctx context.Context, userID string, turns []model.Turn) (string, error) {
	if len(turns) == 0 {
		return s.answer(ctx, userID, startInterviewInstruction)
	}

	transcript := make([]string, len(turns))
	for i, turn := range turns {
		speaker := "Interviewer"
		if turn.Role == model.RoleCandidate {
			speaker = "Candidate"
		}
		transcript[i] = fmt.Sprintf("%s: %s", speaker, turn.Content)
	}

	instruction := fmt.Sprintf(continueInterviewInstruction, strings.Join(transcript, "\n\n"))
	return s.answer(ctx, userID, instruction)
}

// CodeReview requests code-quality feedback and classifies the response into
// categorized items. The classification is best-effort string matching; the
// raw answer is returned alongside it.
func (s *Service) CodeReview(ctx context.Context, userID string) (string, []feedback.Item, error) {
	answer, err := s.answer(ctx, userID, codeReviewInstruction)
	if err != nil {
		return "", nil, err
	}
	return answer, s.classifier.Classify(answer), nil
}
