package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// stepPlayer applies horizontal steering to the player ship and runs the
// respawn timer while the ship is absent. Holding both directions cancels
// out. The ship is clamped so its box never leaves the viewport.
func (g *Game) stepPlayer(in core.InputFrame) {
	if g.world.Player == nil {
		if g.respawnPending && g.respawn.Advance(g.dt) {
			g.respawnPending = false
			g.world.SpawnPlayer(g.cfg.Player.HomeX, g.cfg.Player.HomeY)
		}
		return
	}

	dir := 0.0
	if in.Has(core.ActionLeft) {
		dir -= 1
	}
	if in.Has(core.ActionRight) {
		dir += 1
	}

	p := g.world.Player
	halfW := g.cfg.World.Width / 2
	p.X = core.ClampF(p.X+dir*g.cfg.Player.Speed*g.dt,
		-halfW+g.cfg.Player.HalfWidth, halfW-g.cfg.Player.HalfWidth)
}

// stepShots advances every projectile along its vertical lane and culls
// the ones that crossed their off-screen bound. Culled shots are gone from
// the world before the same frame's collision pass.
func (g *Game) stepShots() {
	for _, s := range g.world.PlayerShots {
		s.Y += s.VY * g.dt
		if s.Y > g.cfg.Shots.TopCullY {
			s.Alive = false
		}
	}
	for _, s := range g.world.EnemyShots {
		s.Y += s.VY * g.dt
		if s.Y < g.cfg.Shots.BottomCullY {
			s.Alive = false
		}
	}
	g.world.compactShots()
}

// stepFormation moves the whole wave one sweep step. The bound check runs
// before any enemy moves: if the pending horizontal step would push any
// member's center outside the patrol band, the frame becomes a reversal
// instead, with every member dropping by the configured step and nobody
// moving sideways. The wave therefore reverses as one body and steps down
// exactly once per reversal.
func (g *Game) stepFormation() {
	if len(g.world.Enemies) == 0 {
		return
	}

	halfW := g.cfg.World.Width / 2
	minX := -halfW + g.cfg.World.EdgeMargin
	maxX := halfW - g.cfg.World.EdgeMargin
	dx := g.world.Dir * g.world.Speed * g.dt

	for _, e := range g.world.Enemies {
		next := e.X + dx
		if next < minX || next > maxX {
			g.world.Dir = -g.world.Dir
			for _, m := range g.world.Enemies {
				m.Y -= g.cfg.Formation.StepDown
			}
			return
		}
	}

	for _, e := range g.world.Enemies {
		e.X += dx
	}
}
