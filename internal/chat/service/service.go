package service

import (
	"context"
	"strings"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/common/logger"
	"github.com/kariua-parish/parish-site/internal/common/validation"
)

const SystemPrompt = `You are a helpful and compassionate AI assistant for Kariua Parish Catholic Church, led by Fr. Karani.
Your role is to:
- Answer questions about Catholic faith, teachings, and traditions
- Provide information about the parish and its activities
- Offer spiritual guidance with reverence and respect
- Help visitors understand Catholic prayers, sacraments, and devotions
- Be welcoming and supportive to people of all backgrounds

The parish features:
- Sacred music including hymns and recorded masses
- Traditional Catholic prayers (Rosary, Novenas, daily prayers)
- Prayer intentions submitted by parishioners
- A welcoming community under Fr. Karani's pastoral care

Always respond with warmth, respect, and spiritual sensitivity. If you don't know something specific about the parish, be honest but helpful.`

// Generator produces one assistant reply for a system prompt and a single
// user message.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, message string) (string, error)
}

type ReplyInput struct {
	Message string `json:"message" validate:"required,notblank,max=4000"`
}

// ChatService relays single visitor messages to the generator. No
// conversation state is kept between calls.
type ChatService struct {
	generator Generator
	validator *validation.Validator
	log       *logger.Logger
}

func NewChatService(generator Generator, validator *validation.Validator, log *logger.Logger) *ChatService {
	return &ChatService{
		generator: generator,
		validator: validator,
		log:       log,
	}
}

func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	// Trimmed only for validation; the model receives the message as typed.
	input := ReplyInput{Message: strings.TrimSpace(message)}
	if err := s.validator.Struct(input); err != nil {
		return "", err
	}

	reply, err := s.generator.Generate(ctx, SystemPrompt, message)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "chat_generation_failed",
		}).Errorf("error in chat relay: %v", err)
		return "", commonerrors.ErrGenerationFailed.WithCause(err)
	}
	return reply, nil
}
