package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rosterMember is the rich import shape: tier numbers plus index references
// into the rule tables.
type rosterMember struct {
	Name        string `json:"name"`
	Defense     *int   `json:"defense"`
	Will        *int   `json:"will"`
	Shoot       *int   `json:"shoot"`
	Fight       *int   `json:"fight"`
	Ranged      *int   `json:"ranged"`
	Melee       *int   `json:"melee"`
	Accessories []int  `json:"accessories"`
	Powers      []int  `json:"powers"`
	Mutations   []int  `json:"mutations"`
}

// flatMember is the simplified import shape with short tier names.
type flatMember struct {
	Name  string `json:"name"`
	Def   *int   `json:"def"`
	Wp    *int   `json:"wp"`
	Shoot *int   `json:"shoot"`
	Fight *int   `json:"fight"`
}

// ImportRoster parses a roster for one team from either supported JSON
// shape: an object with a "members" array carrying table references, or a
// flat array of simplified descriptors. Malformed or missing fields fall
// back to tier 1 and no equipment; only unparseable JSON fails the import.
func ImportRoster(data []byte, team Team, rules *RuleSet) ([]*Model, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty roster document")
	}

	base := 0
	if team == TeamB {
		base = warbandSize
	}

	if trimmed[0] == '[' {
		var flat []flatMember
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return nil, fmt.Errorf("failed to parse flat roster: %w", err)
		}
		out := make([]*Model, 0, len(flat))
		for i, fm := range flat {
			m := &Model{ID: base + i, Team: team, Leader: i == 0, Name: fm.Name}
			m.Tiers[AttrDefense] = importTier(fm.Def)
			m.Tiers[AttrWill] = importTier(fm.Wp)
			m.Tiers[AttrShoot] = importTier(fm.Shoot)
			m.Tiers[AttrFight] = importTier(fm.Fight)
			finishImport(m)
			out = append(out, m)
		}
		return out, nil
	}

	var doc struct {
		Members []rosterMember `json:"members"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	out := make([]*Model, 0, len(doc.Members))
	for i, rm := range doc.Members {
		m := &Model{ID: base + i, Team: team, Leader: i == 0, Name: rm.Name}
		m.Tiers[AttrDefense] = importTier(rm.Defense)
		m.Tiers[AttrWill] = importTier(rm.Will)
		m.Tiers[AttrShoot] = importTier(rm.Shoot)
		m.Tiers[AttrFight] = importTier(rm.Fight)

		if rm.Ranged != nil {
			if w, ok := rules.ShootByIndex(*rm.Ranged); ok {
				m.Ranged = &w
			}
		}
		if rm.Melee != nil {
			if w, ok := rules.FightByIndex(*rm.Melee); ok {
				m.Melee = &w
			}
		}
		// Slot caps are enforced here, at build time, not during play.
		for _, idx := range rm.Accessories {
			if len(m.Accessories) >= m.Tiers[AttrDefense] {
				break
			}
			if idx >= 0 && idx < len(rules.Accessories) {
				m.Accessories = append(m.Accessories, rules.Accessories[idx])
			}
		}
		for _, idx := range rm.Powers {
			if len(m.Powers)+len(m.Mutations) >= m.Tiers[AttrWill] {
				break
			}
			if idx >= 0 && idx < len(rules.Powers) {
				m.Powers = append(m.Powers, rules.Powers[idx])
			}
		}
		for _, idx := range rm.Mutations {
			if len(m.Powers)+len(m.Mutations) >= m.Tiers[AttrWill] {
				break
			}
			if idx >= 0 && idx < len(rules.Mutations) {
				m.Mutations = append(m.Mutations, rules.Mutations[idx])
			}
		}
		finishImport(m)
		out = append(out, m)
	}
	return out, nil
}

// importTier normalizes an imported tier value: missing or out-of-range
// values degrade to tier 1 rather than failing the import.
func importTier(v *int) int {
	if v == nil || *v < 0 || *v > TierCap {
		return 1
	}
	return *v
}

func finishImport(m *Model) {
	if m.Name == "" {
		m.Name = fmt.Sprintf("%s Model %d", m.Team, m.ID%warbandSize)
	}
	m.Wounds = m.WoundsMax()
}
