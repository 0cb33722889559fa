package chat

import (
	"strings"
)

// Classification is the outcome of matching a query against the grammar.
type Classification struct {
	Topic  string
	Intent string
	Params map[string]string
}

// Resolver classifies free-text queries with an ordered pattern grammar.
type Resolver struct {
	topics  []compiledTopic
	intents []compiledIntent
}

// NewResolver compiles a PatternSet into a Resolver.
func NewResolver(ps PatternSet) (*Resolver, error) {
	topics, intents, err := compile(ps)
	if err != nil {
		return nil, err
	}
	return &Resolver{topics: topics, intents: intents}, nil
}

// Topic returns the first topic whose patterns match the query, scanning
// topics and their patterns in declared order. Queries matching nothing fail
// open toward sports, the domain the service exists for.
func (r *Resolver) Topic(query string) string {
	for _, ct := range r.topics {
		for _, re := range ct.patterns {
			if re.MatchString(query) {
				return ct.topic
			}
		}
	}
	return TopicSports
}

// Intent returns the first intent whose patterns match, with any capture
// exposed under the intent's parameter name. Captured values are trimmed and
// lowercased.
func (r *Resolver) Intent(query string) (string, map[string]string) {
	for _, ci := range r.intents {
		for _, re := range ci.patterns {
			m := re.FindStringSubmatch(query)
			if m == nil {
				continue
			}
			params := map[string]string{}
			if ci.param != "" && len(m) > 1 {
				params[ci.param] = strings.ToLower(strings.TrimSpace(m[1]))
			}
			return ci.intent, params
		}
	}
	return IntentGeneralQuestion, map[string]string{}
}

// Classify runs the topic gate and intent extraction in one pass.
func (r *Resolver) Classify(query string) Classification {
	intent, params := r.Intent(query)
	return Classification{
		Topic:  r.Topic(query),
		Intent: intent,
		Params: params,
	}
}
