package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/modules/faq"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

const maxQuestionLen = 1000

type ChatInput struct {
	Question string `json:"question"`
}

type ChatReply struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Matched  bool    `json:"matched"`
	Score    float64 `json:"score"`
}

type ChatService interface {
	Ask(ctx context.Context, in ChatInput) (*ChatReply, error)
	History(ctx context.Context, limit int) ([]*types.ChatMessage, error)
}

type chatService struct {
	log     *logger.Logger
	corpus  []faq.Entry
	repo    repos.ChatMessageRepo
	metrics *observability.Metrics
}

// NewChatService keeps its own copy of corpus.
func NewChatService(log *logger.Logger, corpus []faq.Entry, repo repos.ChatMessageRepo, metrics *observability.Metrics) ChatService {
	return &chatService{
		log:     log.With("service", "ChatService"),
		corpus:  append([]faq.Entry(nil), corpus...),
		repo:    repo,
		metrics: metrics,
	}
}

func (cs *chatService) Ask(ctx context.Context, in ChatInput) (*ChatReply, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if len(in.Question) > maxQuestionLen {
		return nil, badRequest("validation_failed", fmt.Sprintf("question must be at most %d characters", maxQuestionLen))
	}
	question := strings.TrimSpace(in.Question)

	m := faq.Find(question, cs.corpus)
	outcome := "matched"
	switch {
	case m.Index < 0:
		outcome = "no_corpus"
	case !m.Matched:
		outcome = "fallback"
	}
	cs.metrics.IncChatAnswer(outcome)

	msg := &types.ChatMessage{
		UserID:   userID,
		Question: question,
		Answer:   m.Answer,
		Matched:  m.Matched,
		Score:    m.Score,
	}
	if _, err := cs.repo.Create(dbctx.Context{Ctx: ctx}, []*types.ChatMessage{msg}); err != nil {
		cs.log.Warn("Failed to persist chat message", "user_id", userID, "error", err)
	}
	return &ChatReply{Question: question, Answer: m.Answer, Matched: m.Matched, Score: m.Score}, nil
}

func (cs *chatService) History(ctx context.Context, limit int) ([]*types.ChatMessage, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return cs.repo.GetByUserID(dbctx.Context{Ctx: ctx}, userID, limit)
}
