package game

// Attribute indexes one of the four model stats.
type Attribute int

const (
	AttrDefense Attribute = iota
	AttrWill
	AttrShoot
	AttrFight
	attributeCount
)

func (a Attribute) String() string {
	switch a {
	case AttrDefense:
		return "defense"
	case AttrWill:
		return "will"
	case AttrShoot:
		return "shoot"
	case AttrFight:
		return "fight"
	default:
		return "unknown"
	}
}

// TierCap is the highest attribute tier.
const TierCap = 3

// tierStat pairs the combat modifier a tier grants with its build-point cost.
type tierStat struct {
	mod  int
	cost int
}

// The tier tables are deliberately non-linear. Shoot and Fight tier 1 grant
// the tier-0 modifier at a nonzero cost: the first point buys training, not
// talent. These values are the rules, not tuning knobs.
var (
	defenseTable = [TierCap + 1]tierStat{{0, 0}, {1, 4}, {2, 8}, {3, 14}}
	willTable    = [TierCap + 1]tierStat{{0, 0}, {1, 4}, {2, 8}, {3, 14}}
	shootTable   = [TierCap + 1]tierStat{{0, 0}, {0, 3}, {1, 9}, {2, 16}}
	fightTable   = [TierCap + 1]tierStat{{0, 0}, {0, 3}, {1, 9}, {2, 16}}

	// saveTargetByWill is the number a model must roll at or above on its
	// saving throw and horror tests. Will tier 3 reaches the floor of 10.
	saveTargetByWill = [TierCap + 1]int{18, 16, 13, 10}
)

// saveTargetFloor is the best save target any model or weapon can produce.
const saveTargetFloor = 10

func clampTier(t int) int {
	if t < 0 {
		return 0
	}
	if t > TierCap {
		return TierCap
	}
	return t
}

// TierModifier returns the combat modifier for an attribute tier.
func TierModifier(a Attribute, tier int) int {
	return tierTable(a)[clampTier(tier)].mod
}

// TierCost returns the build-point cost of an attribute tier.
func TierCost(a Attribute, tier int) int {
	return tierTable(a)[clampTier(tier)].cost
}

// SaveTargetForWill returns the base saving-throw target for a Will tier.
func SaveTargetForWill(tier int) int {
	return saveTargetByWill[clampTier(tier)]
}

func tierTable(a Attribute) [TierCap + 1]tierStat {
	switch a {
	case AttrDefense:
		return defenseTable
	case AttrWill:
		return willTable
	case AttrShoot:
		return shootTable
	case AttrFight:
		return fightTable
	default:
		return defenseTable
	}
}
