package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultPatterns())
	require.NoError(t, err)
	return r
}

func TestClassifySportSpecific(t *testing.T) {
	r := newTestResolver(t)

	c := r.Classify("what football games are today")
	assert.Equal(t, TopicSports, c.Topic)
	assert.Equal(t, IntentSportEvents, c.Intent)
	assert.Equal(t, "football", c.Params["sport_type"])
}

func TestClassifyThanksIsNonSports(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, TopicNonSports, r.Topic("thanks!"))
}

func TestTopicFailsOpenToSports(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, TopicSports, r.Topic("why is the sky blue"))
}

func TestIntentOrderIsDeterministic(t *testing.T) {
	r := newTestResolver(t)

	// Matches both the sport-specific and team-schedule grammars; the
	// earlier declaration must win.
	intent, params := r.Intent("show me the football matches")
	assert.Equal(t, IntentSportEvents, intent)
	assert.Equal(t, "football", params["sport_type"])
}

func TestIntentAllEvents(t *testing.T) {
	r := newTestResolver(t)

	intent, params := r.Intent("what events are happening this week")
	assert.Equal(t, IntentGetEvents, intent)
	assert.Empty(t, params)
}

func TestIntentTeamCaptureTrimmedAndLowered(t *testing.T) {
	r := newTestResolver(t)

	intent, params := r.Intent("When do the Boston Celtics play")
	assert.Equal(t, IntentTeamSchedule, intent)
	assert.Equal(t, "boston celtics", params["team_name"])
}

func TestIntentCatchAll(t *testing.T) {
	r := newTestResolver(t)

	intent, params := r.Intent("gibberish with no recognizable shape")
	assert.Equal(t, IntentGeneralQuestion, intent)
	assert.Empty(t, params)
}

func TestLoadPatternsReorderChangesOutcome(t *testing.T) {
	ps := DefaultPatterns()
	// Move team-schedule ahead of sport-specific and persist through YAML.
	ps.Intents[1], ps.Intents[2] = ps.Intents[2], ps.Intents[1]

	loaded, err := LoadPatterns(writePatternsFile(t, ps))
	require.NoError(t, err)
	r, err := NewResolver(loaded)
	require.NoError(t, err)

	intent, params := r.Intent("show me the football matches")
	assert.Equal(t, IntentTeamSchedule, intent)
	assert.Equal(t, "football", params["team_name"])
}

func TestLoadPatternsRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("topics: []\nintents: []\n"), 0o644))

	_, err := LoadPatterns(path)
	assert.Error(t, err)
}

func TestLoadPatternsMissingFile(t *testing.T) {
	_, err := LoadPatterns(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func writePatternsFile(t *testing.T, ps PatternSet) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	data, err := yaml.Marshal(ps)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
