package core

// Class identifies a unit's stat template
type Class int

const (
	ClassMelee Class = iota
	ClassRanged
	ClassMage
	ClassGuard
	ClassScout
)

const (
	// GuardHP doubles as the guard tag: combat keys guard rules off MaxHP.
	GuardHP = 25
	// ScoutHP likewise tags barbarian scouts.
	ScoutHP = 9
)

var classNames = map[Class]string{
	ClassMelee:  "melee",
	ClassRanged: "ranged",
	ClassMage:   "mage",
	ClassGuard:  "guard",
	ClassScout:  "scout",
}

func (c Class) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return "unknown"
}

// ParseClass maps a class name back to its value
func ParseClass(s string) (Class, error) {
	for c, n := range classNames {
		if n == s {
			return c, nil
		}
	}
	return 0, ErrUnknownClass
}

// Unit is a single piece on the map
type Unit struct {
	Pos           Coordinate
	Team          Team
	Class         Class
	HP            int
	MaxHP         int
	MovementRange int
	AttackRange   int
	Accuracy      int // 0..100
	MinDamage     int
	MaxDamage     int
	Ranged        bool
	// Hit is set when the unit survives an attack this turn (drives the red tint).
	Hit bool
}

// IsGuard reports whether the unit carries the guard tag
func (u *Unit) IsGuard() bool { return u.MaxHP == GuardHP }

// IsScout reports whether the unit carries the scout tag
func (u *Unit) IsScout() bool { return u.MaxHP == ScoutHP }

type template struct {
	hp, move, attack, accuracy, minDmg, maxDmg int
	ranged                                     bool
}

var templates = map[Class]template{
	ClassMelee:  {hp: 15, move: 4, attack: 1, accuracy: 90, minDmg: 3, maxDmg: 5},
	ClassRanged: {hp: 10, move: 4, attack: 4, accuracy: 85, minDmg: 2, maxDmg: 4, ranged: true},
	ClassMage:   {hp: 10, move: 3, attack: 3, accuracy: 80, minDmg: 3, maxDmg: 6, ranged: true},
	ClassGuard:  {hp: GuardHP, move: 2, attack: 1, accuracy: 70, minDmg: 2, maxDmg: 4},
	ClassScout:  {hp: ScoutHP, move: 6, attack: 1, accuracy: 75, minDmg: 1, maxDmg: 3},
}

// NewUnit builds a full-health unit of the given class
func NewUnit(team Team, class Class, pos Coordinate) (*Unit, error) {
	tpl, ok := templates[class]
	if !ok {
		return nil, ErrUnknownClass
	}
	return &Unit{
		Pos:           pos,
		Team:          team,
		Class:         class,
		HP:            tpl.hp,
		MaxHP:         tpl.hp,
		MovementRange: tpl.move,
		AttackRange:   tpl.attack,
		Accuracy:      tpl.accuracy,
		MinDamage:     tpl.minDmg,
		MaxDamage:     tpl.maxDmg,
		Ranged:        tpl.ranged,
	}, nil
}
