package class

import (
	"fmt"
	"sort"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/leveling"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/logger"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
)

// BuildGroups assembles a character's skill groups from a class config,
// validating every placement against the catalog. Skills the catalog
// doesn't know are logged and skipped, never silently created. Tiers with
// no valid skills get no group.
func BuildGroups(cfg *Config, catalog *skills.Catalog) map[skills.Placement]*skills.SkillGroup {
	groups := make(map[skills.Placement]*skills.SkillGroup)

	for tierName, skillNames := range cfg.Skills {
		placement, err := skills.ParsePlacement(tierName)
		if err != nil {
			logger.Warning("Unknown placement tier in class config",
				"class", cfg.ClassName, "tier", tierName)
			continue
		}

		group := skills.NewSkillGroup(
			fmt.Sprintf("%s %s", cfg.ClassName, placement.String()), placement)

		for _, name := range skillNames {
			if !catalog.Exists(name) {
				logger.Warning("Class places a skill the catalog doesn't know",
					"class", cfg.ClassName, "skill", name)
				continue
			}
			group.AddSkill(name)
		}

		if group.Len() > 0 {
			groups[placement] = group
		}
	}

	return groups
}

// BuildLadder assembles a character's level ladder from a class config.
// Requirement order within a level is made deterministic by sorting on
// skill name.
func BuildLadder(characterName string, cfg *Config) *leveling.Ladder {
	definitions := make([]*leveling.Definition, 0, len(cfg.Levels))

	for levelNum, levelCfg := range cfg.Levels {
		def := &leveling.Definition{
			Level:     levelNum,
			TDPReward: levelCfg.TDPReward,
		}
		for _, req := range levelCfg.Requirements {
			if req.Skill == "" {
				logger.Warning("Level requirement with no skill skipped",
					"class", cfg.ClassName, "level", levelNum)
				continue
			}
			def.Requirements = append(def.Requirements, leveling.Requirement{
				Skill: req.Skill,
				Rank:  req.Rank,
				Bonus: req.Bonus,
			})
		}
		sort.Slice(def.Requirements, func(i, j int) bool {
			return def.Requirements[i].Skill < def.Requirements[j].Skill
		})
		definitions = append(definitions, def)
	}

	return leveling.NewLadder(characterName, definitions)
}
