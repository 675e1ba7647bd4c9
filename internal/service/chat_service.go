package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "virginia-ai/backend/internal/errors"
	"virginia-ai/backend/internal/llm"
	"virginia-ai/backend/internal/model"
	"virginia-ai/backend/internal/repository"
	"virginia-ai/backend/internal/turn"
)

// titleRuneLimit is how much of the first user prompt becomes the thread
// title before an ellipsis is appended.
const titleRuneLimit = 15

// SendMessageRequest is one conversational turn from the client. An empty
// ThreadID starts a new thread.
type SendMessageRequest struct {
	ThreadID string `json:"threadId"`
	Content  string `json:"content" validate:"required,min=1"`
}

// TurnResponse is the outcome of a successful turn: the reply message and
// the post-mutation thread snapshot, so callers never need a follow-up scan
// to resync their view.
type TurnResponse struct {
	Thread *model.ChatThread `json:"thread"`
	Reply  model.Message     `json:"reply"`
}

// ChatService orchestrates one turn end to end: grounding guard, payload
// assembly, gateway call, reply interpretation, persistence, retention.
type ChatService struct {
	repo      repository.Repository
	provider  llm.Provider
	interp    turn.Interpreter
	retention *RetentionManager
	model     string

	// locks serializes turns per thread id. Turns against different
	// threads proceed independently; a second send to the same thread
	// waits for the outstanding one to resolve.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewChatService(repo repository.Repository, provider llm.Provider, interp turn.Interpreter, retention *RetentionManager, modelName string) *ChatService {
	return &ChatService{
		repo:      repo,
		provider:  provider,
		interp:    interp,
		retention: retention,
		model:     modelName,
		locks:     make(map[string]*sync.Mutex),
	}
}

// SendMessage processes one turn. On success the updated thread has been
// durably saved before the call returns. On gateway or storage failure
// nothing is persisted: prior thread state is untouched and the client may
// simply resend.
func (s *ChatService) SendMessage(ctx context.Context, req *SendMessageRequest) (*TurnResponse, error) {
	isNewThread := req.ThreadID == ""
	threadID := req.ThreadID
	if isNewThread {
		threadID = uuid.NewString()
	}

	lock := s.threadLock(threadID)
	lock.Lock()
	defer lock.Unlock()

	var thread *model.ChatThread
	if isNewThread {
		thread = &model.ChatThread{ID: threadID, Title: deriveTitle(req.Content)}
	} else {
		var err error
		thread, err = s.repo.GetThread(ctx, threadID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, fmt.Errorf("%w: thread %q", app_errors.ErrNotFound, threadID)
			}
			return nil, fmt.Errorf("%w: could not load thread: %s", app_errors.ErrStorage, err)
		}
	}

	files, err := s.repo.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not load file collection: %s", app_errors.ErrStorage, err)
	}

	userMsg := model.Message{
		ID:        uuid.NewString(),
		Role:      turn.RoleUser,
		Text:      req.Content,
		Timestamp: time.Now().UTC(),
	}

	reply, err := s.generateReply(ctx, files, thread.Messages, userMsg)
	if err != nil {
		return nil, err
	}

	thread.Messages = append(thread.Messages, userMsg, reply)
	thread.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveThread(ctx, thread); err != nil {
		return nil, fmt.Errorf("%w: could not save thread: %s", app_errors.ErrStorage, err)
	}

	// Best-effort: eviction failure never fails the turn.
	s.retention.Enforce(ctx)

	return &TurnResponse{Thread: thread, Reply: reply}, nil
}

// generateReply produces the model message for one turn. With no files
// uploaded it short-circuits to the fixed refusal: no gateway call is ever
// attempted without reference material.
func (s *ChatService) generateReply(ctx context.Context, files []*model.StoredFile, history []model.Message, userMsg model.Message) (model.Message, error) {
	now := time.Now().UTC()

	if len(files) == 0 {
		return model.Message{
			ID:        uuid.NewString(),
			Role:      turn.RoleModel,
			Text:      turn.RefusalText,
			Timestamp: now,
			Usage:     &model.TokenUsage{},
			Citations: []string{},
		}, nil
	}

	contents := turn.BuildContents(files, history, userMsg.Text)

	resp, err := s.provider.Generate(ctx, &llm.GenerateRequest{
		Model:    s.model,
		Contents: contents,
		Config: llm.GenerateConfig{
			Temperature:       turn.Temperature,
			SystemInstruction: turn.SystemInstruction,
		},
	})
	if err != nil {
		slog.Error("Gateway call failed", "error", err)
		return model.Message{}, fmt.Errorf("%w: %s", app_errors.ErrGateway, err)
	}

	text := resp.Text
	if text == "" {
		text = turn.EmptyReplyText
	}
	result := s.interp.Interpret(text)
	usage := turn.UsageFromMetadata(resp.UsageMetadata)

	return model.Message{
		ID:        uuid.NewString(),
		Role:      turn.RoleModel,
		Text:      result.Answer,
		Timestamp: now,
		Usage:     &usage,
		Citations: result.Citations,
	}, nil
}

// ListThreads returns every stored thread, most recently updated first.
func (s *ChatService) ListThreads(ctx context.Context) ([]*model.ChatThread, error) {
	threads, err := s.repo.ListThreads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list threads: %s", app_errors.ErrStorage, err)
	}
	return threads, nil
}

// GetThread returns one thread by id.
func (s *ChatService) GetThread(ctx context.Context, threadID string) (*model.ChatThread, error) {
	thread, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("%w: thread %q", app_errors.ErrNotFound, threadID)
		}
		return nil, fmt.Errorf("%w: could not get thread: %s", app_errors.ErrStorage, err)
	}
	return thread, nil
}

// DeleteThread removes a thread. Deleting an unknown id is a no-op.
func (s *ChatService) DeleteThread(ctx context.Context, threadID string) error {
	if err := s.repo.DeleteThread(ctx, threadID); err != nil {
		return fmt.Errorf("%w: could not delete thread: %s", app_errors.ErrStorage, err)
	}
	return nil
}

func (s *ChatService) threadLock(threadID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[threadID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[threadID] = lock
	}
	return lock
}

// deriveTitle takes the first 15 runes of the first user prompt, with an
// ellipsis when truncated.
func deriveTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= titleRuneLimit {
		return prompt
	}
	return string(runes[:titleRuneLimit]) + "..."
}
