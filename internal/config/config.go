// Package config loads the engine tunables: action costs, combat constants,
// upkeep rates, terrain tables and victory thresholds. A loaded Tunables
// value is injected into the engine at construction and never mutated during
// a game, so tuning changes cannot desync a running replay.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Tunables holds every engine constant subject to balance tuning.
type Tunables struct {
	Rules   RulesConfig              `mapstructure:"rules"`
	Costs   map[string]int           `mapstructure:"costs"`
	Combat  CombatConfig             `mapstructure:"combat"`
	Upkeep  UpkeepConfig             `mapstructure:"upkeep"`
	Events  EventsConfig             `mapstructure:"events"`
	Revolt  RevoltConfig             `mapstructure:"revolt"`
	Victory VictoryConfig            `mapstructure:"victory"`
	Terrain map[string]TerrainConfig `mapstructure:"terrain"`
}

// RulesConfig holds general turn-cycle settings.
type RulesConfig struct {
	ActionsPerTurn int `mapstructure:"actions_per_turn"`
}

// CombatConfig holds the combat resolution constants.
type CombatConfig struct {
	RandomnessMin      float64 `mapstructure:"randomness_min"`
	RandomnessMax      float64 `mapstructure:"randomness_max"`
	DecisiveThreshold  float64 `mapstructure:"decisive_threshold"`
	AttackerTechDiv    float64 `mapstructure:"attacker_tech_div"`
	DefenderTechDiv    float64 `mapstructure:"defender_tech_div"`
	AttackerSupportDiv float64 `mapstructure:"attacker_support_div"`
	DefenderSupportDiv float64 `mapstructure:"defender_support_div"`
	SiegeRetreatStep   int     `mapstructure:"siege_retreat_step"`
}

// UpkeepConfig holds the per-turn economy and drift rates.
type UpkeepConfig struct {
	IncomePerTerritory int     `mapstructure:"income_per_territory"`
	UpkeepPerTerritory int     `mapstructure:"upkeep_per_territory"`
	SupportDecay       int     `mapstructure:"support_decay"`
	ScienceDrift       int     `mapstructure:"science_drift"`
	CrimeGrowth        int     `mapstructure:"crime_growth"`
	CrimeDecayLaws     int     `mapstructure:"crime_decay_laws"`
	WarStabilityDecay  int     `mapstructure:"war_stability_decay"`
	SupplyRecovery     int     `mapstructure:"supply_recovery"`
	SiegeSupplyLoss    int     `mapstructure:"siege_supply_loss"`
	MoraleRecovery     int     `mapstructure:"morale_recovery"`
	SiegeMoraleLoss    int     `mapstructure:"siege_morale_loss"`
	BlockadeDecay      float64 `mapstructure:"blockade_decay"`
}

// EventsConfig holds the event pool settings.
type EventsConfig struct {
	AISkipChance float64 `mapstructure:"ai_skip_chance"`
}

// RevoltConfig holds the revolt check settings.
type RevoltConfig struct {
	Threshold     int     `mapstructure:"threshold"`
	Chance        float64 `mapstructure:"chance"`
	StabilityCost int     `mapstructure:"stability_cost"`
	MaxGarrison   int     `mapstructure:"max_garrison_loss"`
}

// VictoryConfig holds the win/loss thresholds.
type VictoryConfig struct {
	TerritoryGoal   int `mapstructure:"territory_goal"`
	InfluenceGoal   int `mapstructure:"influence_goal"`
	StabilityGoal   int `mapstructure:"stability_goal"`
	DefeatStability int `mapstructure:"defeat_stability"`
}

// TerrainConfig holds the per-terrain combat and movement modifiers.
type TerrainConfig struct {
	CombatModifier float64 `mapstructure:"combat_modifier"`
	MovementCost   int     `mapstructure:"movement_cost"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rules.actions_per_turn", 3)

	// Base gold cost per action type; nation traits adjust on top.
	v.SetDefault("costs.collect_taxes", 0)
	v.SetDefault("costs.recruit_army", 4)
	v.SetDefault("costs.invest_tech", 6)
	v.SetDefault("costs.pass_law", 5)
	v.SetDefault("costs.suppress_crime", 4)
	v.SetDefault("costs.host_games", 6)
	v.SetDefault("costs.diplomacy_offer", 3)
	v.SetDefault("costs.declare_war", 2)
	v.SetDefault("costs.espionage", 5)
	v.SetDefault("costs.sabotage", 6)
	v.SetDefault("costs.move_army", 1)

	v.SetDefault("combat.randomness_min", 0.85)
	v.SetDefault("combat.randomness_max", 1.15)
	v.SetDefault("combat.decisive_threshold", 1.18)
	v.SetDefault("combat.attacker_tech_div", 150)
	v.SetDefault("combat.defender_tech_div", 160)
	v.SetDefault("combat.attacker_support_div", 180)
	v.SetDefault("combat.defender_support_div", 200)
	v.SetDefault("combat.siege_retreat_step", 12)

	v.SetDefault("upkeep.income_per_territory", 6)
	v.SetDefault("upkeep.upkeep_per_territory", 2)
	v.SetDefault("upkeep.support_decay", 1)
	v.SetDefault("upkeep.science_drift", 1)
	v.SetDefault("upkeep.crime_growth", 2)
	v.SetDefault("upkeep.crime_decay_laws", 1)
	v.SetDefault("upkeep.war_stability_decay", 1)
	v.SetDefault("upkeep.supply_recovery", 3)
	v.SetDefault("upkeep.siege_supply_loss", 5)
	v.SetDefault("upkeep.morale_recovery", 2)
	v.SetDefault("upkeep.siege_morale_loss", 3)
	v.SetDefault("upkeep.blockade_decay", 0.1)

	v.SetDefault("events.ai_skip_chance", 0.45)

	v.SetDefault("revolt.threshold", 60)
	v.SetDefault("revolt.chance", 0.4)
	v.SetDefault("revolt.stability_cost", 3)
	v.SetDefault("revolt.max_garrison_loss", 2)

	v.SetDefault("victory.territory_goal", 8)
	v.SetDefault("victory.influence_goal", 90)
	v.SetDefault("victory.stability_goal", 75)
	v.SetDefault("victory.defeat_stability", 20)

	v.SetDefault("terrain.plains.combat_modifier", 1.0)
	v.SetDefault("terrain.plains.movement_cost", 1)
	v.SetDefault("terrain.coast.combat_modifier", 1.0)
	v.SetDefault("terrain.coast.movement_cost", 1)
	v.SetDefault("terrain.hills.combat_modifier", 1.1)
	v.SetDefault("terrain.hills.movement_cost", 2)
	v.SetDefault("terrain.forest.combat_modifier", 1.05)
	v.SetDefault("terrain.forest.movement_cost", 2)
	v.SetDefault("terrain.desert.combat_modifier", 0.9)
	v.SetDefault("terrain.desert.movement_cost", 2)
	v.SetDefault("terrain.mountains.combat_modifier", 1.25)
	v.SetDefault("terrain.mountains.movement_cost", 3)
}

// Load reads tunables from the given file path, falling back to built-in
// defaults when the path is empty or the file is missing.
func Load(configPath string) (*Tunables, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("imperium")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("IMPERIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return nil, fmt.Errorf("config: read: %w", err)
		}
		// Missing file is fine; defaults apply.
	}

	t := &Tunables{}
	if err := v.Unmarshal(t); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Default returns the built-in tunables without touching the filesystem.
func Default() *Tunables {
	v := viper.New()
	setDefaults(v)
	t := &Tunables{}
	if err := v.Unmarshal(t); err != nil {
		panic("config: defaults do not decode: " + err.Error())
	}
	return t
}

// Validate rejects tunable combinations the engine cannot run with.
func (t *Tunables) Validate() error {
	if t.Rules.ActionsPerTurn < 1 {
		return fmt.Errorf("config: rules.actions_per_turn must be >= 1")
	}
	if t.Combat.RandomnessMin <= 0 || t.Combat.RandomnessMax < t.Combat.RandomnessMin {
		return fmt.Errorf("config: combat randomness band is invalid")
	}
	if t.Combat.DecisiveThreshold < 1 {
		return fmt.Errorf("config: combat.decisive_threshold must be >= 1")
	}
	for _, name := range []string{"plains", "coast", "hills", "forest", "desert", "mountains"} {
		tc, ok := t.Terrain[name]
		if !ok {
			return fmt.Errorf("config: terrain.%s is missing", name)
		}
		if tc.MovementCost < 1 {
			return fmt.Errorf("config: terrain.%s.movement_cost must be >= 1", name)
		}
	}
	return nil
}

// Cost returns the base gold cost for an action type key.
func (t *Tunables) Cost(actionType string) int {
	return t.Costs[actionType]
}

// TerrainFor returns the modifiers for a terrain name, defaulting to plains
// semantics for unknown terrain.
func (t *Tunables) TerrainFor(name string) TerrainConfig {
	if tc, ok := t.Terrain[name]; ok {
		return tc
	}
	return TerrainConfig{CombatModifier: 1.0, MovementCost: 1}
}

// Watch re-reads the config file on change and invokes onChange with the
// freshly decoded tunables. A running game keeps its injected snapshot; the
// host decides when a new snapshot takes effect.
func Watch(configPath string, onChange func(*Tunables)) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: watch read: %w", err)
	}
	v.OnConfigChange(func(fsnotify.Event) {
		t := &Tunables{}
		if err := v.Unmarshal(t); err != nil {
			return
		}
		if err := t.Validate(); err != nil {
			return
		}
		onChange(t)
	})
	v.WatchConfig()
	return v, nil
}
