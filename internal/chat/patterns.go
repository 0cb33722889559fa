// Package chat resolves free-text queries against the event feed. A two-stage
// ordered pattern grammar (topic gate, then intent extraction) drives the
// rule-based path; an optional AI-assist backend can answer first, with any
// failure falling back wholesale to the rules.
package chat

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Intent and topic tags. Pattern order is part of the contract — the first
// match in declared order wins — so the tables below are ordered lists, never
// maps.
const (
	TopicSports    = "sports"
	TopicNonSports = "non_sports"

	IntentGetEvents       = "get_events"
	IntentSportEvents     = "get_sport_specific_events"
	IntentTeamSchedule    = "get_team_schedule"
	IntentGeneralQuestion = "general_question"
)

// TopicRule is one topic category with its signal patterns.
type TopicRule struct {
	Topic    string   `yaml:"topic"`
	Patterns []string `yaml:"patterns"`
}

// IntentRule is one intent with its pattern alternatives. Param names the
// capture group exposed as a parameter; empty means the intent captures
// nothing.
type IntentRule struct {
	Intent   string   `yaml:"intent"`
	Param    string   `yaml:"param"`
	Patterns []string `yaml:"patterns"`
}

// PatternSet is the full resolver grammar as ordered configuration.
type PatternSet struct {
	Topics  []TopicRule  `yaml:"topics"`
	Intents []IntentRule `yaml:"intents"`
}

// DefaultPatterns returns the built-in grammar.
func DefaultPatterns() PatternSet {
	return PatternSet{
		Topics: []TopicRule{
			{Topic: TopicSports, Patterns: []string{
				`(?i)sports?`,
				`(?i)match(es)?`,
				`(?i)game(s)?`,
				`(?i)event(s)?`,
				`(?i)tournament(s)?`,
				`(?i)championship(s)?`,
				`(?i)football|soccer|basketball|cricket|baseball|tennis`,
				`(?i)team(s)?`,
				`(?i)play(ing|er)?`,
				`(?i)score(s)?`,
				`(?i)schedule(s)?`,
			}},
			{Topic: TopicNonSports, Patterns: []string{
				`(?i)joke(s)?`,
				`(?i)funny`,
				`(?i)weather`,
				`(?i)news`,
				`(?i)movie(s)?`,
				`(?i)music`,
				`(?i)restaurant(s)?`,
				`(?i)tell me about`,
				`(?i)how (are|is) you`,
				`(?i)hello|hi|hey`,
				`(?i)thanks?|thank you`,
			}},
		},
		Intents: []IntentRule{
			{Intent: IntentGetEvents, Patterns: []string{
				`(?i)what\s+(?:sports\s+)?events\s+(?:are\s+)?(?:there|happening|scheduled)(?:\s+today|\s+this\s+week|\s+this\s+month)?`,
				`(?i)show\s+me\s+(?:all\s+)?(?:the\s+)?(?:sports\s+)?events(?:\s+today|\s+this\s+week|\s+this\s+month)?`,
				`(?i)list\s+(?:all\s+)?(?:the\s+)?(?:sports\s+)?events(?:\s+today|\s+this\s+week|\s+this\s+month)?`,
			}},
			{Intent: IntentSportEvents, Param: "sport_type", Patterns: []string{
				`(?i)what\s+(?:are\s+the\s+)?(\w+)\s+(?:games|events|matches)(?:\s+today|\s+this\s+week|\s+this\s+month)?`,
				`(?i)show\s+me\s+(?:all\s+)?(?:the\s+)?(\w+)\s+(?:games|events|matches)(?:\s+today|\s+this\s+week|\s+this\s+month)?`,
				`(?i)when\s+(?:is|are)\s+the\s+next\s+(\w+)\s+(?:game|event|match)`,
				`(?i)list\s+(?:all\s+)?(?:the\s+)?(\w+)\s+(?:games|events|matches)(?:\s+today|\s+this\s+week|\s+this\s+month)?`,
			}},
			{Intent: IntentTeamSchedule, Param: "team_name", Patterns: []string{
				`(?i)when\s+(?:do|does|is|are)\s+(?:the\s+)?([A-Za-z\s]+)(?:\s+play|\s+playing|\s+game|\s+match)`,
				`(?i)what\s+(?:is|are)\s+(?:the\s+)?([A-Za-z\s]+)(?:\s+schedule|\s+games|\s+matches)`,
				`(?i)show\s+me\s+(?:the\s+)?([A-Za-z\s]+)(?:\s+schedule|\s+games|\s+matches)`,
			}},
			// Catch-all so classification always terminates with a result.
			{Intent: IntentGeneralQuestion, Patterns: []string{`(?s).*`}},
		},
	}
}

// LoadPatterns reads a PatternSet from a YAML file.
func LoadPatterns(path string) (PatternSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PatternSet{}, fmt.Errorf("read patterns file: %w", err)
	}
	var ps PatternSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return PatternSet{}, fmt.Errorf("parse patterns file: %w", err)
	}
	if len(ps.Topics) == 0 || len(ps.Intents) == 0 {
		return PatternSet{}, fmt.Errorf("patterns file %s: topics and intents must both be non-empty", path)
	}
	return ps, nil
}

// compiledTopic and compiledIntent hold the grammar with patterns compiled,
// preserving declaration order.
type compiledTopic struct {
	topic    string
	patterns []*regexp.Regexp
}

type compiledIntent struct {
	intent   string
	param    string
	patterns []*regexp.Regexp
}

func compile(ps PatternSet) ([]compiledTopic, []compiledIntent, error) {
	topics := make([]compiledTopic, 0, len(ps.Topics))
	for _, tr := range ps.Topics {
		ct := compiledTopic{topic: tr.Topic}
		for _, p := range tr.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, nil, fmt.Errorf("topic %s pattern %q: %w", tr.Topic, p, err)
			}
			ct.patterns = append(ct.patterns, re)
		}
		topics = append(topics, ct)
	}

	intents := make([]compiledIntent, 0, len(ps.Intents))
	for _, ir := range ps.Intents {
		ci := compiledIntent{intent: ir.Intent, param: ir.Param}
		for _, p := range ir.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, nil, fmt.Errorf("intent %s pattern %q: %w", ir.Intent, p, err)
			}
			ci.patterns = append(ci.patterns, re)
		}
		intents = append(intents, ci)
	}
	return topics, intents, nil
}
