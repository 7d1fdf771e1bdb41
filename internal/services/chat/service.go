package chat

import (
	"context"
	"strconv"
	"strings"

	"github.com/iyunix/go-retriever/internal/domain"
	"github.com/iyunix/go-retriever/internal/repository/conversation"
	"github.com/iyunix/go-retriever/internal/repository/message"
	"github.com/iyunix/go-retriever/internal/services/ai"
	"github.com/iyunix/go-retriever/internal/services/index"
)

// Service is the query engine: it reconstructs conversation memory from the
// store, retrieves passages from the caller's index and generates an answer.
// It is stateless across calls; everything is rebuilt from persisted state.
type Service struct {
	config       *Config
	convRepo     conversation.ConversationRepository
	messageRepo  message.MessageRepository
	indexService *index.Service
	llm          ai.CompletionProvider
	logger       Logger
}

func NewService(
	config *Config,
	convRepo conversation.ConversationRepository,
	messageRepo message.MessageRepository,
	indexService *index.Service,
	llm ai.CompletionProvider,
	logger Logger,
) (*Service, error) {
	if convRepo == nil {
		return nil, NewValidationError("constructor", "conversation repository is required")
	}
	if messageRepo == nil {
		return nil, NewValidationError("constructor", "message repository is required")
	}
	if indexService == nil {
		return nil, NewValidationError("constructor", "index service is required")
	}
	if llm == nil {
		return nil, NewValidationError("constructor", "completion provider is required")
	}
	if err := config.Validate(); err != nil {
		return nil, NewValidationError("config", err.Error())
	}

	return &Service{
		config:       config,
		convRepo:     convRepo,
		messageRepo:  messageRepo,
		indexService: indexService,
		llm:          llm,
		logger:       logger,
	}, nil
}

// CreateConversation starts a new thread for an indexed document.
func (s *Service) CreateConversation(ctx context.Context, userID uint, fileName, title string) (*domain.Conversation, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("create_conversation", "title cannot be empty")
	}
	title = truncateRunes(title, domain.MaxTitleLength)

	conv := &domain.Conversation{UserID: userID, FileName: fileName, Title: title}
	created, err := s.convRepo.Create(ctx, conv)
	if err != nil {
		return nil, NewRAGError("create_conversation", "could not create conversation", err)
	}
	return created, nil
}

// GetUserConversations lists the caller's conversations.
func (s *Service) GetUserConversations(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	return s.convRepo.FindByUserID(ctx, userID)
}

// GetConversationMessages returns all messages of a conversation the caller
// owns. Unowned or unknown conversations are both reported as not found.
func (s *Service) GetConversationMessages(ctx context.Context, userID, conversationID uint) ([]domain.Message, error) {
	if err := s.requireOwnership(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.messageRepo.FindByConversationID(ctx, conversationID)
}

// DeleteConversation removes a conversation the caller owns together with
// all of its messages.
func (s *Service) DeleteConversation(ctx context.Context, userID, conversationID uint) error {
	if err := s.requireOwnership(ctx, userID, conversationID); err != nil {
		return err
	}

	count, err := s.messageRepo.CountByConversationID(ctx, conversationID)
	if err != nil {
		return NewRAGError("delete_conversation", "could not count conversation messages", err)
	}
	if err := s.convRepo.DeleteWithMessages(ctx, conversationID); err != nil {
		return err
	}

	s.logger.Info("conversation deleted",
		"user_id", userID, "conversation_id", conversationID, "messages_removed", count)
	return nil
}

// LoadMemory reconstructs the memory buffer for a conversation from its
// persisted messages, ordered by creation time.
func (s *Service) LoadMemory(ctx context.Context, conversationID uint) ([]Turn, error) {
	messages, err := s.messageRepo.FindByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return BuildMemory(messages), nil
}

// Answer runs one query turn: load the caller's index, rebuild memory,
// retrieve context, generate, then persist both turns. Nothing is persisted
// if any earlier step fails, so a question never appears without its answer.
func (s *Service) Answer(ctx context.Context, userID uint, username string, conversationID uint, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, NewValidationError("answer", "question cannot be empty")
	}
	if len(question) > s.config.MaxQuestionLength {
		return nil, NewValidationError("answer", "question too long")
	}

	if err := s.requireOwnership(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	history, err := s.LoadMemory(ctx, conversationID)
	if err != nil {
		return nil, NewRAGError("answer", "could not load conversation memory", err)
	}

	matches, err := s.indexService.Retrieve(ctx, username, question, s.config.RetrievalTopK)
	if err != nil {
		// Missing index propagates unwrapped: callers surface it as a
		// distinct "upload a document first" condition.
		return nil, err
	}

	prompt := BuildPrompt(matches, history, question)
	answer, err := s.llm.GetCompletion(ctx, prompt)
	if err != nil {
		return nil, NewRAGError("answer", "completion failed", err)
	}
	answer = truncateRunes(answer, domain.MaxMessageLength)

	if err := s.messageRepo.CreatePair(ctx, conversationID, question, answer); err != nil {
		return nil, NewRAGError("answer", "could not persist conversation turn", err)
	}

	s.logger.Info("query answered",
		"user_id", userID, "conversation_id", conversationID,
		"history_turns", len(history), "sources", len(matches))

	return &Result{
		Answer:  answer,
		Sources: s.buildSources(matches),
	}, nil
}

func (s *Service) buildSources(matches []index.Match) []Source {
	sources := make([]Source, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, Source{
			Content: truncatePreview(m.Chunk.Content, s.config.SourcePreviewLength),
			Metadata: map[string]string{
				"source": m.Chunk.Source,
				"page":   strconv.Itoa(m.Chunk.Page),
				"chunk":  strconv.Itoa(m.Chunk.Ordinal),
				"score":  strconv.FormatFloat(float64(m.Score), 'f', 6, 32),
			},
		})
	}
	return sources
}

// requireOwnership reports ErrConversationNotFound for both unknown and
// unowned conversations, so existence is not leaked across users.
func (s *Service) requireOwnership(ctx context.Context, userID, conversationID uint) error {
	conv, err := s.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv.UserID != userID {
		s.logger.Warn("conversation access denied",
			"user_id", userID, "conversation_id", conversationID)
		return conversation.ErrConversationNotFound
	}
	return nil
}
