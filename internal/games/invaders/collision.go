package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// playerBox returns the player ship's collision box.
func (g *Game) playerBox(p *Player) core.AABB {
	return core.NewAABB(p.X, p.Y, g.cfg.Player.HalfWidth, g.cfg.Player.HalfHeight)
}

// enemyBox returns a wave member's collision box.
func (g *Game) enemyBox(e *Enemy) core.AABB {
	return core.NewAABB(e.X, e.Y, g.cfg.Formation.EnemyHalfW, g.cfg.Formation.EnemyHalfH)
}

// shotBox returns a projectile's collision box.
func (g *Game) shotBox(s *Shot) core.AABB {
	return core.NewAABB(s.X, s.Y, g.cfg.Shots.HalfWidth, g.cfg.Shots.HalfHeight)
}

// resolveCollisions runs both projectile passes and sweeps the casualties
// out of the world before the frame's progression check.
func (g *Game) resolveCollisions() {
	g.resolvePlayerShots()
	g.resolveEnemyShots()
	g.world.compactShots()
	g.world.compactEnemies()
}

// resolvePlayerShots tests every live player shot against the wave. A shot
// despawns on its first hit and never strikes twice in one frame; when two
// enemies overlap the same shot, the first match in wave order takes it.
func (g *Game) resolvePlayerShots() {
	for _, s := range g.world.PlayerShots {
		if !s.Alive {
			continue
		}
		box := g.shotBox(s)
		for _, e := range g.world.Enemies {
			if !e.Alive {
				continue
			}
			if box.Overlaps(g.enemyBox(e)) {
				s.Alive = false
				e.Alive = false
				g.world.Score += g.cfg.Rules.KillPoints
				if g.cfg.Rules.WinScore > 0 && g.world.Score >= g.cfg.Rules.WinScore {
					g.world.setTerminal(StateWon)
				}
				break
			}
		}
	}
}

// resolveEnemyShots tests every live enemy shot against the player ship.
// Once the ship despawns, later shots in the same frame fly through.
func (g *Game) resolveEnemyShots() {
	for _, s := range g.world.EnemyShots {
		if !s.Alive {
			continue
		}
		p := g.world.Player
		if p == nil {
			return
		}
		if g.shotBox(s).Overlaps(g.playerBox(p)) {
			s.Alive = false
			g.hitPlayer()
		}
	}
}

// hitPlayer despawns the ship and spends one life. With lives remaining
// the ship returns to the home position after the respawn delay (or at
// once when the delay is zero); on the last life the phase turns to
// StateLost in the same frame. Lives never go below zero.
func (g *Game) hitPlayer() {
	g.world.DespawnPlayer()
	g.world.Lives--
	if g.world.Lives < 0 {
		g.world.Lives = 0
	}
	if g.world.Lives > 0 {
		if g.cfg.Player.RespawnDelay <= 0 {
			g.world.SpawnPlayer(g.cfg.Player.HomeX, g.cfg.Player.HomeY)
			return
		}
		g.respawnPending = true
		g.respawn.Reset()
		return
	}
	g.world.setTerminal(StateLost)
}
