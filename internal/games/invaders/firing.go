package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// Cooldown is an accumulated-time trigger. Advance feeds it frame deltas
// and reports readiness; the accumulator saturates at the threshold so a
// held trigger fires the moment it becomes legal again. A non-positive
// threshold disables the trigger entirely.
type Cooldown struct {
	Elapsed   float64
	Threshold float64
}

// NewCooldown returns a cold trigger: the first firing takes a full
// threshold of accumulated time.
func NewCooldown(threshold float64) Cooldown {
	return Cooldown{Threshold: threshold}
}

// Advance adds dt to the accumulator and reports whether the threshold has
// been reached.
func (c *Cooldown) Advance(dt float64) bool {
	if c.Threshold <= 0 {
		return false
	}
	if c.Elapsed < c.Threshold {
		c.Elapsed += dt
	}
	return c.Elapsed >= c.Threshold
}

// Ready reports whether the trigger would fire without advancing it.
func (c *Cooldown) Ready() bool {
	return c.Threshold > 0 && c.Elapsed >= c.Threshold
}

// Reset empties the accumulator after an actual firing.
func (c *Cooldown) Reset() {
	c.Elapsed = 0
}

// stepFiring runs both guns. The player gun fires only when its cooldown
// elapsed, the fire input is held and the ship is alive; readiness is kept
// across frames where the input is absent. The enemy gun fires on its own
// clock from one wave member chosen uniformly at random; an empty wave
// skips the shot but still consumes the firing window.
func (g *Game) stepFiring(in core.InputFrame) {
	if g.playerGun.Advance(g.dt) && in.Has(core.ActionFire) && g.world.Player != nil {
		g.playerGun.Reset()
		p := g.world.Player
		g.world.SpawnPlayerShot(p.X, p.Y+g.cfg.Shots.SpawnOffset, g.cfg.Shots.Speed)
	}

	if g.enemyGun.Advance(g.dt) {
		g.enemyGun.Reset()
		if n := len(g.world.Enemies); n > 0 {
			e := g.world.Enemies[g.rng.Intn(n)]
			g.world.SpawnEnemyShot(e.X, e.Y-g.cfg.Shots.SpawnOffset, g.cfg.Shots.Speed)
		}
	}
}
