package agent

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"slotwise/models"
	"slotwise/services/llm"
	"slotwise/services/session"
	"slotwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	correctiveObservation = "Invalid format. Respond with either 'Action: <tool>' followed by 'Action Input: <input>', or 'Final Answer: <answer>'."
	forcedStopAnswer      = "I wasn't able to complete that within my reasoning budget. Could you rephrase or break the request into smaller steps?"
)

// Service drives a conversation turn through the reasoning loop.
// All failures are absorbed into the response text; the loop never lets a
// fault cross this boundary.
type Service interface {
	ProcessMessage(ctx context.Context, message, sessionID string) *models.ChatResponse
}

// Options tune the loop.
type Options struct {
	// MaxIterations bounds reason/act cycles per invocation (default 5).
	MaxIterations int
	// HistoryTurns is how many transcript turns seed the prompt (default 6).
	HistoryTurns int
	// CommitPartialAnswers controls whether a forced stop writes its
	// partial answer to the transcript.
	CommitPartialAnswers bool
}

// DefaultAgentService implements Service with a Thought/Action/Observation
// loop over a text-only language model.
type DefaultAgentService struct {
	llm           llm.Client
	tools         []Tool
	toolsByName   map[string]Tool
	store         session.Store
	maxIterations int
	historyTurns  int
	commitPartial bool

	// sessionLocks serializes invocations per session id so concurrent
	// requests cannot interleave transcript appends. A fixed stripe count
	// keeps the lock table bounded regardless of session churn.
	sessionLocks [sessionLockStripes]sync.Mutex

	now func() time.Time
}

const sessionLockStripes = 64

func NewService(client llm.Client, toolbox *Toolbox, store session.Store, opts Options) *DefaultAgentService {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 5
	}
	if opts.HistoryTurns <= 0 {
		opts.HistoryTurns = 6
	}

	tools := toolbox.Tools()
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}

	return &DefaultAgentService{
		llm:           client,
		tools:         tools,
		toolsByName:   byName,
		store:         store,
		maxIterations: opts.MaxIterations,
		historyTurns:  opts.HistoryTurns,
		commitPartial: opts.CommitPartialAnswers,
		now:           time.Now,
	}
}

// ProcessMessage runs one conversation turn. A missing session id starts a
// fresh session; the (possibly generated) id is echoed in the response.
func (s *DefaultAgentService) ProcessMessage(ctx context.Context, message, sessionID string) *models.ChatResponse {
	logger := utils.GetLogger()

	if sessionID == "" {
		sessionID = "session_" + uuid.New().String()
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	history, err := s.store.History(ctx, sessionID, s.historyTurns)
	if err != nil {
		// A broken store costs memory of past turns, not the conversation.
		logger.Warn("failed to load session history", zap.String("sessionID", sessionID), zap.Error(err))
		history = nil
	}
	historyText := renderHistory(history)
	currentDate := s.now().Format("2006-01-02")

	var scratchpad strings.Builder
	var lastObservation string

	for i := 0; i < s.maxIterations; i++ {
		prompt := buildPrompt(s.tools, currentDate, historyText, message, scratchpad.String())

		raw, err := s.llm.GenerateContent(ctx, prompt)
		if err != nil {
			logger.Error("language model call failed",
				zap.String("sessionID", sessionID), zap.String("provider", s.llm.Name()), zap.Error(err))
			// Not committed: the transcript only records exchanges the
			// assistant actually answered.
			return &models.ChatResponse{Response: classifyLLMError(err), SessionID: sessionID}
		}

		out, perr := ParseModelOutput(raw)
		if perr != nil {
			// Malformed step: tell the model what went wrong and let it
			// retry within the iteration budget.
			s.observe(&scratchpad, raw, correctiveObservation)
			continue
		}

		if out.Final {
			s.commit(ctx, sessionID, message, out.FinalAnswer)
			return &models.ChatResponse{Response: out.FinalAnswer, SessionID: sessionID}
		}

		tool, ok := s.toolsByName[out.Action]
		if !ok {
			s.observe(&scratchpad, raw, fmt.Sprintf("Unknown action %q. Available actions: %s.", out.Action, s.toolNames()))
			continue
		}

		observation := tool.Run(ctx, out.ActionInput)
		lastObservation = observation
		logger.Debug("tool invoked",
			zap.String("sessionID", sessionID), zap.String("tool", out.Action), zap.Int("iteration", i+1))
		s.observe(&scratchpad, raw, observation)
	}

	// Iteration cap reached: force-stop with whatever partial content exists.
	answer := forcedStopAnswer
	if lastObservation != "" {
		answer = "I ran out of reasoning steps, but here is what I found:\n\n" + lastObservation
	}
	if s.commitPartial {
		s.commit(ctx, sessionID, message, answer)
	}
	return &models.ChatResponse{Response: answer, SessionID: sessionID}
}

func (s *DefaultAgentService) observe(scratchpad *strings.Builder, raw, observation string) {
	scratchpad.WriteString(strings.TrimSpace(raw))
	scratchpad.WriteString("\nObservation: ")
	scratchpad.WriteString(observation)
	scratchpad.WriteString("\nThought: ")
}

func (s *DefaultAgentService) commit(ctx context.Context, sessionID, userText, assistantText string) {
	if err := s.store.AppendExchange(ctx, sessionID, userText, assistantText); err != nil {
		utils.GetLogger().Warn("failed to commit exchange",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
}

func (s *DefaultAgentService) lockSession(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	mu := &s.sessionLocks[h.Sum32()%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *DefaultAgentService) toolNames() string {
	names := make([]string, len(s.tools))
	for i, t := range s.tools {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
