package game

import "fmt"

// Point caps per roster slot. The leader is a known quantity; followers get
// the deep budget and carry the warband's equipment.
const (
	LeaderPointCap   = 20
	FollowerPointCap = 75

	tierDrawAttempts = 25 // bounded retries before the all-tier-1 fallback
)

// PointsCost returns the model's full build cost: tier costs plus every
// equipped item's points.
func (m *Model) PointsCost() int {
	cost := 0
	for a := Attribute(0); a < attributeCount; a++ {
		cost += TierCost(a, m.Tiers[a])
	}
	if m.Ranged != nil {
		cost += m.Ranged.Points
	}
	if m.Melee != nil {
		cost += m.Melee.Points
	}
	for _, acc := range m.Accessories {
		cost += acc.Points
	}
	for _, p := range m.Powers {
		cost += p.Points
	}
	for _, mu := range m.Mutations {
		cost += mu.Points
	}
	return cost
}

// GenerateWarband rolls a full five-model roster for one team: a leader and
// four followers, each built within its point cap. This is a greedy sampler,
// not an optimizer — it never exceeds the cap but need not spend it all.
func GenerateWarband(team Team, rules *RuleSet, dice *Dice) []*Model {
	base := 0
	if team == TeamB {
		base = warbandSize
	}
	out := make([]*Model, 0, warbandSize)
	out = append(out, generateModel(base, team, true, LeaderPointCap, rules, dice))
	for i := 1; i < warbandSize; i++ {
		out = append(out, generateModel(base+i, team, false, FollowerPointCap, rules, dice))
	}
	return out
}

// generateModel draws tiers and then spends what is left of the budget on
// equipment, one affordable draw at a time.
func generateModel(id int, team Team, leader bool, pointCap int, rules *RuleSet, dice *Dice) *Model {
	m := &Model{
		ID:     id,
		Team:   team,
		Leader: leader,
	}
	if leader {
		m.Name = fmt.Sprintf("%s Leader", team)
	} else {
		m.Name = fmt.Sprintf("%s Follower %d", team, id%warbandSize)
	}

	// Tiers: random draws in [1,3], rejected while over budget. The
	// all-tier-1 build always fits, so a roster is always produced.
	tiers := [attributeCount]int{1, 1, 1, 1}
	for attempt := 0; attempt < tierDrawAttempts; attempt++ {
		var draw [attributeCount]int
		cost := 0
		for a := Attribute(0); a < attributeCount; a++ {
			draw[a] = 1 + dice.Intn(TierCap)
			cost += TierCost(a, draw[a])
		}
		if cost <= pointCap {
			tiers = draw
			break
		}
	}
	m.Tiers = tiers
	budget := pointCap - m.PointsCost()

	// Equipment: one ranged weapon, one melee weapon, then accessory and
	// power/mutation slots, every draw filtered to what is still affordable.
	if w, ok := drawWeapon(rules.Shoot, budget, dice); ok {
		m.Ranged = &w
		budget -= w.Points
	}
	if w, ok := drawWeapon(rules.Fight, budget, dice); ok {
		m.Melee = &w
		budget -= w.Points
	}

	for len(m.Accessories) < m.Tiers[AttrDefense] {
		var pool []AccessoryDef
		for _, a := range rules.Accessories {
			if a.Points <= budget && !hasAccessory(m, a.Name) {
				pool = append(pool, a)
			}
		}
		if len(pool) == 0 {
			break
		}
		pick := pool[dice.Intn(len(pool))]
		m.Accessories = append(m.Accessories, pick)
		budget -= pick.Points
	}

	// Powers and mutations share the Will-tier slot allowance.
	for len(m.Powers)+len(m.Mutations) < m.Tiers[AttrWill] {
		type gift struct {
			power    *PowerDef
			mutation *MutationDef
			points   int
		}
		var pool []gift
		for i := range rules.Powers {
			p := rules.Powers[i]
			if p.Points <= budget && !hasPower(m, p.Name) {
				pool = append(pool, gift{power: &p, points: p.Points})
			}
		}
		for i := range rules.Mutations {
			mu := rules.Mutations[i]
			if mu.Points <= budget && !hasMutation(m, mu.Name) {
				pool = append(pool, gift{mutation: &mu, points: mu.Points})
			}
		}
		if len(pool) == 0 {
			break
		}
		pick := pool[dice.Intn(len(pool))]
		if pick.power != nil {
			m.Powers = append(m.Powers, *pick.power)
		} else {
			m.Mutations = append(m.Mutations, *pick.mutation)
		}
		budget -= pick.points
	}

	m.Wounds = m.WoundsMax()
	return m
}

// drawWeapon picks a random affordable entry from a weapon table.
func drawWeapon(table []WeaponDef, budget int, dice *Dice) (WeaponDef, bool) {
	var pool []WeaponDef
	for _, w := range table {
		if w.Points <= budget {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return WeaponDef{}, false
	}
	return pool[dice.Intn(len(pool))], true
}

func hasAccessory(m *Model, name string) bool {
	for _, a := range m.Accessories {
		if a.Name == name {
			return true
		}
	}
	return false
}

func hasPower(m *Model, name string) bool {
	for _, p := range m.Powers {
		if p.Name == name {
			return true
		}
	}
	return false
}

func hasMutation(m *Model, name string) bool {
	for _, mu := range m.Mutations {
		if mu.Name == name {
			return true
		}
	}
	return false
}
