package tournaments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"antiyoy/agent"
	"antiyoy/game"
	"antiyoy/searcher"
)

// AgentConfig names and parameterizes one contestant.
type AgentConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // passive, rule-based or minimax
	// Minimax tuning; zero values keep the searcher defaults.
	Depth       int `yaml:"depth"`
	TurnActions int `yaml:"turnActions"`
}

// Config describes a tournament: every pair of agents plays the given
// number of rounds on freshly generated maps. Seeds derive from BaseSeed
// plus the round number, so a config reruns identically.
type Config struct {
	Rounds   int                 `yaml:"rounds"`
	BaseSeed uint64              `yaml:"baseSeed"`
	Map      game.GenerateConfig `yaml:"map"`
	Agents   []AgentConfig       `yaml:"agents"`
}

// LoadConfig reads and validates a YAML tournament config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading tournament config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing tournament config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("tournament needs at least one round, got %d", c.Rounds)
	}
	if len(c.Agents) < 2 {
		return fmt.Errorf("tournament needs at least two agents, got %d", len(c.Agents))
	}
	seen := make(map[string]bool)
	for _, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("every agent needs a name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate agent name %q", a.Name)
		}
		seen[a.Name] = true
		if _, err := buildPolicy(a); err != nil {
			return err
		}
	}
	return nil
}

func buildPolicy(cfg AgentConfig) (agent.Policy, error) {
	switch cfg.Kind {
	case "passive":
		return agent.Passive{}, nil
	case "rule-based":
		return agent.RuleBased{}, nil
	case "minimax":
		var options []searcher.Option
		if cfg.Depth > 0 {
			options = append(options, searcher.WithDepth(cfg.Depth))
		}
		if cfg.TurnActions > 0 {
			options = append(options, searcher.WithTurnActions(cfg.TurnActions))
		}
		return agent.NewMinimaxPolicy(cfg.Name, options...), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q for %s", cfg.Kind, cfg.Name)
	}
}

// DefaultConfig is the quick two-agent setup used when no config file is
// given: rule-based against a depth-2 minimax on a small island.
func DefaultConfig() Config {
	return Config{
		Rounds:   10,
		BaseSeed: 1,
		Map: game.GenerateConfig{
			Dimension:    10,
			LandTiles:    40,
			ProvinceSize: 6,
		},
		Agents: []AgentConfig{
			{Name: "rule-based", Kind: "rule-based"},
			{Name: "minimax", Kind: "minimax", Depth: 2},
		},
	}
}
