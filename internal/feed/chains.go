package feed

import (
	"log/slog"
	"time"

	"github.com/albapepper/matchfeed/internal/config"
	"github.com/albapepper/matchfeed/internal/event"
	"github.com/albapepper/matchfeed/internal/provider"
	"github.com/albapepper/matchfeed/internal/provider/apifootball"
	"github.com/albapepper/matchfeed/internal/provider/bdl"
	"github.com/albapepper/matchfeed/internal/provider/cricapi"
	"github.com/albapepper/matchfeed/internal/provider/synthetic"
	"github.com/albapepper/matchfeed/internal/provider/thesportsdb"
)

// BuildChains instantiates the configured provider chain per sport. Adapter
// instances are shared across chains so their rate limiters stay global.
// Unknown provider names are skipped with a warning rather than failing
// startup — a typo in one chain must not take the feed down.
func BuildChains(cfg *config.Config, logger *slog.Logger, now func() time.Time) map[string][]provider.Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}

	bdlClient := bdl.NewClient("", cfg.BDLAPIKey, cfg.UpstreamReqsMin, logger)
	named := map[string]provider.Provider{
		"balldontlie":  bdl.NewGames(bdlClient, now),
		"api-football": apifootball.New("", cfg.FootballAPIKey, cfg.UpstreamReqsMin, logger, now),
		"cricapi":      cricapi.New("", cfg.CricketAPIKey, cfg.UpstreamReqsMin, logger),
		"thesportsdb":  thesportsdb.New("", cfg.SportsDBAPIKey, cfg.UpstreamReqsMin, logger),
	}
	generators := map[string]provider.Provider{
		event.SportFootball:   synthetic.NewFootball(now),
		event.SportBasketball: synthetic.NewBasketball(now),
		event.SportCricket:    synthetic.NewCricket(now),
	}

	chains := make(map[string][]provider.Provider, len(cfg.Chains))
	for sport, names := range cfg.Chains {
		chain := make([]provider.Provider, 0, len(names))
		for _, name := range names {
			if name == "synthetic" {
				if gen, ok := generators[sport]; ok {
					chain = append(chain, gen)
				}
				continue
			}
			p, ok := named[name]
			if !ok {
				logger.Warn("Unknown provider in chain", "sport", sport, "provider", name)
				continue
			}
			chain = append(chain, p)
		}
		chains[sport] = chain
	}
	return chains
}

// NewFromConfig wires a complete feed service from application config.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, now func() time.Time) *Service {
	return New(BuildChains(cfg, logger, now), Options{
		TTL:            cfg.CacheTTL,
		AdapterTimeout: cfg.AdapterTimeout,
		MaxPerSport:    cfg.MaxPerSport,
		AlwaysFresh:    cfg.AlwaysFresh,
		Order:          config.Sports(),
		Now:            now,
		Logger:         logger,
	})
}
