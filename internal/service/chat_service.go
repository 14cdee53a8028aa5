package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fardardnsyh/Project-96/internal/cache"
	"github.com/fardardnsyh/Project-96/internal/domain"
	"github.com/fardardnsyh/Project-96/internal/llm"
	"github.com/fardardnsyh/Project-96/internal/repository"
)

// ChatService orquesta el pipeline de mensajes: persistir el mensaje del
// usuario, resolver la respuesta (cache o proveedor) y persistir la del bot.
type ChatService struct {
	logger   *zap.Logger
	messages repository.MessageRepository
	replies  cache.ReplyCache
	client   llm.Client
}

var (
	ErrChatServiceNotConfigured = errors.New("chat service not configured")
	ErrEmptyMessage             = errors.New("empty message")
)

const (
	// DefaultHistoryLimit aplica cuando el cliente no pide un límite.
	DefaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

func NewChatService(logger *zap.Logger, messages repository.MessageRepository, replies cache.ReplyCache, client llm.Client) *ChatService {
	return &ChatService{
		logger:   logger,
		messages: messages,
		replies:  replies,
		client:   client,
	}
}

// Reply procesa un mensaje entrante y devuelve la respuesta del bot.
//
// El mensaje del usuario se persiste antes de consultar cache o proveedor:
// si un paso posterior falla, ese registro queda huérfano a propósito (no hay
// compensación ni transacción que cruce pasos). Un hit de cache no genera
// fila de bot nueva ni llamada al proveedor.
func (s *ChatService) Reply(ctx context.Context, userID, text string) (string, error) {
	if s == nil || s.messages == nil || s.client == nil {
		return "", ErrChatServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	userMsg := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Sender:    domain.SenderUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return "", fmt.Errorf("persist user message: %w", err)
	}

	// La clave es el texto crudo: mensajes que difieren en espacios o
	// mayúsculas son claves distintas.
	if s.replies != nil {
		if reply, ok := s.replies.Get(text); ok {
			if s.logger != nil {
				s.logger.Debug("cache hit", zap.String("user_id", userID))
			}
			return reply, nil
		}
	}

	reply, err := s.client.Generate(ctx, text)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	botMsg := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Sender:    domain.SenderBot,
		Text:      reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, botMsg); err != nil {
		return "", fmt.Errorf("persist bot message: %w", err)
	}

	if s.replies != nil {
		s.replies.Set(text, reply)
	}

	return reply, nil
}

// History devuelve los mensajes del usuario, más recientes primero.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	if s == nil || s.messages == nil {
		return nil, ErrChatServiceNotConfigured
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.messages.ListByUserID(ctx, userID, limit)
}
