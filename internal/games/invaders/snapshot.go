package invaders

import "math"

// EntitySnap is the flattened form of one world entity.
type EntitySnap struct {
	ID   int
	X, Y float64
}

// Snapshot contains the complete observable simulation state. Tests and
// tooling compare runs through snapshots instead of poking at the world.
type Snapshot struct {
	Tick  uint64
	Phase GamePhase
	Score int
	Lives int
	Level int
	Speed float64
	Dir   float64

	PlayerAlive    bool
	PlayerX        float64
	PlayerY        float64
	RespawnPending bool

	// Accumulated cooldown time of both guns
	PlayerGunElapsed float64
	EnemyGunElapsed  float64

	Enemies     []EntitySnap
	PlayerShots []EntitySnap
	EnemyShots  []EntitySnap
}

// Snapshot returns the current game state as a Snapshot. Entity order is
// spawn order, which the per-frame compaction preserves.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Phase: g.world.Phase,
		Score: g.world.Score,
		Lives: g.world.Lives,
		Level: g.world.Level,
		Speed: g.world.Speed,
		Dir:   g.world.Dir,

		RespawnPending:   g.respawnPending,
		PlayerGunElapsed: g.playerGun.Elapsed,
		EnemyGunElapsed:  g.enemyGun.Elapsed,

		Enemies:     make([]EntitySnap, 0, len(g.world.Enemies)),
		PlayerShots: make([]EntitySnap, 0, len(g.world.PlayerShots)),
		EnemyShots:  make([]EntitySnap, 0, len(g.world.EnemyShots)),
	}

	if p := g.world.Player; p != nil {
		snap.PlayerAlive = true
		snap.PlayerX = p.X
		snap.PlayerY = p.Y
	}

	for _, e := range g.world.Enemies {
		snap.Enemies = append(snap.Enemies, EntitySnap{ID: e.ID, X: e.X, Y: e.Y})
	}
	for _, s := range g.world.PlayerShots {
		snap.PlayerShots = append(snap.PlayerShots, EntitySnap{ID: s.ID, X: s.X, Y: s.Y})
	}
	for _, s := range g.world.EnemyShots {
		snap.EnemyShots = append(snap.EnemyShots, EntitySnap{ID: s.ID, X: s.X, Y: s.Y})
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floats are folded through their bit patterns, so two runs hash equal
// only when every coordinate is bit-for-bit identical.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, b := range []byte(snap.Phase) {
		h = h*31 + uint64(b)
	}
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Speed)
	h = h*31 + math.Float64bits(snap.Dir)

	h = h*31 + boolBit(snap.PlayerAlive)
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + boolBit(snap.RespawnPending)
	h = h*31 + math.Float64bits(snap.PlayerGunElapsed)
	h = h*31 + math.Float64bits(snap.EnemyGunElapsed)

	h = h*31 + uint64(len(snap.Enemies))     //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.PlayerShots)) //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.EnemyShots))  //#nosec G115 -- hash computation

	for _, e := range snap.Enemies {
		h = h*31 + uint64(e.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
	}
	for _, s := range snap.PlayerShots {
		h = h*31 + uint64(s.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(s.X)
		h = h*31 + math.Float64bits(s.Y)
	}
	for _, s := range snap.EnemyShots {
		h = h*31 + uint64(s.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(s.X)
		h = h*31 + math.Float64bits(s.Y)
	}

	return h
}

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}
