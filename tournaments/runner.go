package tournaments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"antiyoy/agent"
	"antiyoy/engine"
	"antiyoy/game"
)

// MatchRecord describes one finished match for reporting.
type MatchRecord struct {
	Round   int
	Seed    uint64
	First   string
	Second  string
	Winner  string // empty for a draw
	Turns   int
	Replay  string
	Elapsed time.Duration
}

// Standings tallies results per agent name and keeps every match record.
type Standings struct {
	Games   int
	Wins    map[string]int
	Draws   int
	Errors  int
	Matches []MatchRecord
}

// Run plays every agent pairing for the configured number of rounds, both
// seat orders, on maps generated from round-derived seeds. Identical
// configs produce identical tournaments.
func Run(cfg Config) (Standings, error) {
	if err := cfg.validate(); err != nil {
		return Standings{}, err
	}

	standings := Standings{Wins: make(map[string]int)}
	for i := 0; i < len(cfg.Agents); i++ {
		for j := i + 1; j < len(cfg.Agents); j++ {
			for round := 0; round < cfg.Rounds; round++ {
				// Both seat orders so first-move advantage evens out.
				pairings := [][2]AgentConfig{
					{cfg.Agents[i], cfg.Agents[j]},
					{cfg.Agents[j], cfg.Agents[i]},
				}
				for _, pair := range pairings {
					if err := playMatch(cfg, pair, round, &standings); err != nil {
						standings.Errors++
						log.Warn().Err(err).
							Str("first", pair[0].Name).
							Str("second", pair[1].Name).
							Msg("match aborted")
					}
				}
			}
		}
	}

	for name, wins := range standings.Wins {
		log.Info().Str("agent", name).Int("wins", wins).Msg("tournament standing")
	}
	log.Info().Int("games", standings.Games).Int("draws", standings.Draws).Msg("tournament finished")
	return standings, nil
}

func playMatch(cfg Config, pair [2]AgentConfig, round int, standings *Standings) error {
	mapCfg := cfg.Map
	mapCfg.Seed = cfg.BaseSeed + uint64(round)

	scenario, err := game.GenerateScenario(mapCfg, []string{pair[0].Name, pair[1].Name})
	if err != nil {
		return fmt.Errorf("generating round map: %w", err)
	}

	policies := make([]agent.Policy, 2)
	for i, a := range pair {
		policies[i], err = buildPolicy(a)
		if err != nil {
			return err
		}
	}

	e := engine.LocalEngine(scenario, policies)
	started := time.Now()
	winner := e.Run()

	record := MatchRecord{
		Round:   round,
		Seed:    mapCfg.Seed,
		First:   pair[0].Name,
		Second:  pair[1].Name,
		Turns:   scenario.TurnCount,
		Replay:  e.Replay.ID.String(),
		Elapsed: time.Since(started),
	}
	standings.Games++
	if winner == game.NoWinner {
		standings.Draws++
	} else {
		record.Winner = pair[winner].Name
		standings.Wins[record.Winner]++
	}
	standings.Matches = append(standings.Matches, record)
	return nil
}
