package core

// CombatRules holds the guard handling constants. Guards are recognized by
// their template hp, see Unit.IsGuard.
type CombatRules struct {
	GuardAccuracyPenalty int
}

// DefaultCombatRules returns the stock combat constants
func DefaultCombatRules() CombatRules {
	return CombatRules{GuardAccuracyPenalty: 20}
}

// RollDamage draws the raw damage attacker deals to victim: a 0..99 accuracy roll,
// then a uniform pick from the attacker's damage band on a hit.
func (cr CombatRules) RollDamage(rng RNG, attacker, victim *Unit) int {
	roll := rng.Intn(100)
	accuracy := attacker.Accuracy
	if victim.IsGuard() {
		accuracy -= cr.GuardAccuracyPenalty
		if accuracy < 0 {
			accuracy = 0
		}
	}
	if roll >= accuracy {
		return 0
	}
	spread := attacker.MaxDamage - attacker.MinDamage + 1
	if spread <= 1 {
		return attacker.MinDamage
	}
	return attacker.MinDamage + rng.Intn(spread)
}

// Mitigate applies the guard's shield: ranged hits above 1 are halved
func (cr CombatRules) Mitigate(attacker, victim *Unit, raw int) int {
	if victim.IsGuard() && attacker.Ranged && raw > 1 {
		return raw / 2
	}
	return raw
}

// AttackResult describes one resolved attack
type AttackResult struct {
	Damage int
	Killed bool
}

// Resolve rolls and applies an attack. A killed victim has hp set to 0; removing
// it from the board is the caller's job.
func (cr CombatRules) Resolve(rng RNG, attacker, victim *Unit) AttackResult {
	dmg := cr.Mitigate(attacker, victim, cr.RollDamage(rng, attacker, victim))
	if victim.HP <= dmg {
		victim.HP = 0
		return AttackResult{Damage: dmg, Killed: true}
	}
	victim.HP -= dmg
	victim.Hit = true
	return AttackResult{Damage: dmg}
}
