package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	dailyQuoteCacheKey = "motivation:daily:%s" // date-keyed, shared by all users
	dailyQuoteCacheTTL = 24 * time.Hour

	quotePrompt = "Write one short motivational quote for someone training at the gym today. " +
		"One or two sentences, no preamble, no quotation marks."
)

// Quote is the daily motivation payload.
type Quote struct {
	Text   string `json:"text"`
	Source string `json:"source"` // "ai", "fallback" or "cache"
	Date   string `json:"date"`
}

// fallbackQuotes serve when no AI backend is configured or the call fails.
var fallbackQuotes = []string{
	"The only bad workout is the one that didn't happen.",
	"Small steps every day add up to big results.",
	"Your body can stand almost anything. It's your mind you have to convince.",
	"Discipline is choosing between what you want now and what you want most.",
	"Strength does not come from winning. Your struggles develop your strengths.",
	"It never gets easier, you just get stronger.",
	"Sweat is just fat crying.",
}

// QuoteService serves one motivational quote per day, cached in Redis so
// every user sees the same quote and the AI backend is hit at most once a
// day.
type QuoteService struct {
	redis  *redis.Client
	ai     *openai.Client
	model  string
	logger zerolog.Logger
}

// NewQuoteService builds the service. aiClient may be nil; the service then
// rotates through the built-in quotes.
func NewQuoteService(redisClient *redis.Client, aiClient *openai.Client, model string, logger zerolog.Logger) *QuoteService {
	return &QuoteService{
		redis:  redisClient,
		ai:     aiClient,
		model:  model,
		logger: logger.With().Str("component", "QuoteService").Logger(),
	}
}

// DailyQuote returns today's quote, generating and caching it on first use.
func (s *QuoteService) DailyQuote(ctx context.Context) (*Quote, error) {
	date := time.Now().UTC().Format("2006-01-02")
	key := fmt.Sprintf(dailyQuoteCacheKey, date)

	if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
		var quote Quote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			quote.Source = "cache"
			return &quote, nil
		}
		s.logger.Warn().Str("key", key).Msg("Dropping undecodable cached quote")
	} else if err != redis.Nil {
		// Cache outage is not fatal, generation still works.
		s.logger.Warn().Err(err).Msg("Redis lookup failed, generating without cache")
	}

	quote := s.generate(ctx, date)

	if payload, err := json.Marshal(quote); err == nil {
		if err := s.redis.Set(ctx, key, payload, dailyQuoteCacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache daily quote")
		}
	}
	return quote, nil
}

func (s *QuoteService) generate(ctx context.Context, date string) *Quote {
	if s.ai != nil {
		text, err := s.generateWithAI(ctx)
		if err == nil && text != "" {
			s.logger.Info().Str("date", date).Msg("Daily quote generated")
			return &Quote{Text: text, Source: "ai", Date: date}
		}
		s.logger.Warn().Err(err).Msg("AI generation failed, serving fallback quote")
	}

	day, _ := time.Parse("2006-01-02", date)
	idx := day.YearDay() % len(fallbackQuotes)
	return &Quote{Text: fallbackQuotes[idx], Source: "fallback", Date: date}
}

func (s *QuoteService) generateWithAI(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := s.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: quotePrompt},
		},
		MaxTokens:   120,
		Temperature: 0.9,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
