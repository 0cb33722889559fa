package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/albapepper/matchfeed/internal/config"
	"github.com/albapepper/matchfeed/internal/event"
)

// Feed is the event source the chat layer reads from. It never writes.
type Feed interface {
	Events(ctx context.Context, category string) []event.Event
}

// Completer is an optional AI backend. Any error falls back to the
// rule-based path with no partial output mixing.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Service answers chat queries. The AI path is tried first when configured;
// the deterministic rule path is both the fallback and the default.
type Service struct {
	resolver *Resolver
	feed     Feed
	assist   Completer
	sports   []string
	logger   *slog.Logger
}

// NewService wires a chat Service. assist may be nil.
func NewService(f Feed, r *Resolver, assist Completer, sports []string, logger *slog.Logger) *Service {
	return &Service{
		resolver: r,
		feed:     f,
		assist:   assist,
		sports:   sports,
		logger:   logger,
	}
}

// NewFromConfig builds the Service with the grammar from cfg.PatternsFile, or
// the built-in grammar when unset.
func NewFromConfig(cfg *config.Config, f Feed, assist Completer, logger *slog.Logger) (*Service, error) {
	ps := DefaultPatterns()
	if cfg.PatternsFile != "" {
		loaded, err := LoadPatterns(cfg.PatternsFile)
		if err != nil {
			return nil, err
		}
		ps = loaded
	}
	r, err := NewResolver(ps)
	if err != nil {
		return nil, err
	}
	return NewService(f, r, assist, config.Sports(), logger), nil
}

// Classify exposes the resolver's view of a query.
func (s *Service) Classify(query string) Classification {
	return s.resolver.Classify(query)
}

// Respond produces the reply for one query. Each query is independent; there
// is no cross-query memory.
func (s *Service) Respond(ctx context.Context, query string) string {
	if s.assist != nil {
		reply, err := s.assist.Complete(ctx, s.systemPrompt(ctx, query), query)
		if err == nil {
			return reply
		}
		s.logger.Warn("assist failed, falling back to rules", "error", err)
	}
	return s.respondWithRules(ctx, query)
}

var (
	eplQuery          = regexp.MustCompile(`(?i)EPL|Premier League|upcoming match`)
	footballMention   = regexp.MustCompile(`(?i)football|soccer|premier\s+league|epl`)
	cricketMention    = regexp.MustCompile(`(?i)cricket|ipl|t20`)
	basketballMention = regexp.MustCompile(`(?i)basketball|nba`)
)

func (s *Service) respondWithRules(ctx context.Context, query string) string {
	// Premier League questions bypass the grammar: answer from the football
	// feed, narrowed to the competition when it yields anything.
	if eplQuery.MatchString(query) {
		events := s.feed.Events(ctx, event.SportFootball)
		var epl []event.Event
		for _, e := range events {
			if strings.EqualFold(e.Competition, "Premier League") {
				epl = append(epl, e)
			}
		}
		if len(epl) > 0 {
			return FormatEvents(epl, "Premier League")
		}
		return FormatEvents(events, event.SportFootball)
	}

	if s.resolver.Topic(query) == TopicNonSports {
		return nonSportsReply(query)
	}

	intent, params := s.resolver.Intent(query)
	switch intent {
	case IntentGetEvents:
		return FormatEvents(s.feed.Events(ctx, event.CategoryAll), event.CategoryAll)

	case IntentSportEvents:
		sport := params["sport_type"]
		if !slices.Contains(s.sports, sport) {
			return fmt.Sprintf("I don't have information about %s events at the moment. I currently track %s events.",
				sport, sportsPhrase(s.sports))
		}
		return FormatEvents(s.feed.Events(ctx, sport), sport)

	case IntentTeamSchedule:
		team := params["team_name"]
		var matched []event.Event
		for _, e := range s.feed.Events(ctx, event.CategoryAll) {
			if strings.Contains(strings.ToLower(e.HomeTeam), team) ||
				strings.Contains(strings.ToLower(e.AwayTeam), team) {
				matched = append(matched, e)
			}
		}
		if len(matched) == 0 {
			return fmt.Sprintf("I couldn't find any scheduled events for %s. Please check the team name or try another team.", team)
		}
		return FormatTeamEvents(matched, team)

	default:
		return "I'm a sports event tracker chatbot. You can ask me about upcoming sports events, schedules for specific teams, or events for specific sports like football, basketball, or cricket. How can I help you today?"
	}
}

var (
	jokeQuery   = regexp.MustCompile(`(?i)joke`)
	howAreYou   = regexp.MustCompile(`(?i)how are you|how do you do`)
	greeting    = regexp.MustCompile(`(?i)hello|hi|hey`)
	thanksQuery = regexp.MustCompile(`(?i)thanks|thank you`)
)

func nonSportsReply(query string) string {
	switch {
	case jokeQuery.MatchString(query):
		return "I'm a sports information assistant. Instead of jokes, I can tell you about upcoming sports events! Would you like to know what games are happening soon?"
	case howAreYou.MatchString(query):
		return "I'm functioning well, thank you! I'm here to help with sports information. What sports events would you like to know about today?"
	case greeting.MatchString(query):
		return "Hello! I'm your sports events assistant. I can help you find information about upcoming games, teams, and sports events. What would you like to know about?"
	case thanksQuery.MatchString(query):
		return "You're welcome! I'm happy to help with any sports information you need. Is there a specific team or sport you're interested in?"
	default:
		return "I'm a sports event tracker chatbot focused on providing information about sports. I can tell you about upcoming events, team schedules, or specific sports like football, basketball, or cricket. How can I help you with sports today?"
	}
}

// sportsPhrase joins sport names as "a, b, and c" for reply text.
func sportsPhrase(sports []string) string {
	switch len(sports) {
	case 0:
		return "no"
	case 1:
		return sports[0]
	case 2:
		return sports[0] + " and " + sports[1]
	default:
		return strings.Join(sports[:len(sports)-1], ", ") + ", and " + sports[len(sports)-1]
	}
}

// systemPrompt builds the AI context: a redirect prompt for off-topic
// queries, otherwise a sport-scoped prompt carrying a sample of live feed
// data so the model answers from real events.
func (s *Service) systemPrompt(ctx context.Context, query string) string {
	if s.resolver.Topic(query) == TopicNonSports {
		return "You are a helpful assistant that specializes in sports information. " +
			"If asked about non-sports topics, politely redirect the conversation " +
			"to sports-related questions. Be friendly but firm about staying on topic."
	}

	switch {
	case footballMention.MatchString(query):
		events := s.feed.Events(ctx, event.SportFootball)
		return fmt.Sprintf("You are a helpful sports events assistant specializing in football/soccer. "+
			"The user is asking about football/soccer. "+
			"You have access to the following football events: %s", eventsJSON(events, maxFormatted))
	case cricketMention.MatchString(query):
		events := s.feed.Events(ctx, event.SportCricket)
		return fmt.Sprintf("You are a helpful sports events assistant specializing in cricket. "+
			"The user is asking about cricket. "+
			"You have access to the following cricket events: %s", eventsJSON(events, maxFormatted))
	case basketballMention.MatchString(query):
		events := s.feed.Events(ctx, event.SportBasketball)
		return fmt.Sprintf("You are a helpful sports events assistant specializing in basketball. "+
			"The user is asking about basketball. "+
			"You have access to the following basketball events: %s", eventsJSON(events, maxFormatted))
	}

	// General sports query: one sample event per sport.
	all := s.feed.Events(ctx, event.CategoryAll)
	var sample []event.Event
	for _, sport := range s.sports {
		for _, e := range all {
			if e.Sport == sport {
				sample = append(sample, e)
				break
			}
		}
	}
	return fmt.Sprintf("You are a helpful sports events assistant. "+
		"You have access to the following sports events from various sports: %s "+
		"The full set of events includes football matches from the Premier League, "+
		"basketball games, and cricket matches. Respond to the user's query based on the events data.",
		eventsJSON(sample, len(sample)))
}

func eventsJSON(events []event.Event, limit int) string {
	if len(events) > limit {
		events = events[:limit]
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "[]"
	}
	return string(data)
}
