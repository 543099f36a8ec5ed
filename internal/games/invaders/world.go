package invaders

// GamePhase labels the win/loss state machine the simulation runs in.
// Gameplay systems only advance while the phase is StatePlaying.
type GamePhase string

const (
	StatePlaying GamePhase = "playing"
	StateWon     GamePhase = "won"
	StateLost    GamePhase = "lost"
)

// Player is the player ship. At most one instance exists; the World holds
// nil while a respawn is pending or after the final life is lost.
type Player struct {
	X, Y float64
}

// Enemy is a single wave member. Position is the box center in world units.
type Enemy struct {
	ID    int
	X, Y  float64
	Alive bool
}

// Shot is a projectile of either kind. VY carries the direction of travel:
// positive for player shots (up), negative for enemy shots (down).
type Shot struct {
	ID    int
	X, Y  float64
	VY    float64
	Alive bool
}

// World owns every live entity and all global counters. The simulation
// systems mutate it exclusively; collaborators only see snapshots.
type World struct {
	Player      *Player
	Enemies     []*Enemy
	PlayerShots []*Shot
	EnemyShots  []*Shot

	Score int
	Lives int
	Level int
	Speed float64 // Current formation sweep speed, units/second
	Dir   float64 // Shared sweep direction for the whole wave: +1 or -1
	Phase GamePhase

	nextID int
}

// newWorld creates an empty world in the playing phase.
func newWorld() *World {
	return &World{
		Enemies:     make([]*Enemy, 0, 64),
		PlayerShots: make([]*Shot, 0, 8),
		EnemyShots:  make([]*Shot, 0, 8),
		Dir:         1,
		Phase:       StatePlaying,
	}
}

// spawnID hands out a fresh entity id.
func (w *World) spawnID() int {
	w.nextID++
	return w.nextID
}

// SpawnPlayer places the player ship at the given position, replacing any
// existing instance.
func (w *World) SpawnPlayer(x, y float64) {
	w.Player = &Player{X: x, Y: y}
}

// DespawnPlayer removes the player ship.
func (w *World) DespawnPlayer() {
	w.Player = nil
}

// SpawnEnemy adds a wave member at the given position.
func (w *World) SpawnEnemy(x, y float64) *Enemy {
	e := &Enemy{ID: w.spawnID(), X: x, Y: y, Alive: true}
	w.Enemies = append(w.Enemies, e)
	return e
}

// SpawnPlayerShot adds an upward projectile at the given position.
func (w *World) SpawnPlayerShot(x, y, speed float64) *Shot {
	s := &Shot{ID: w.spawnID(), X: x, Y: y, VY: speed, Alive: true}
	w.PlayerShots = append(w.PlayerShots, s)
	return s
}

// SpawnEnemyShot adds a downward projectile at the given position.
func (w *World) SpawnEnemyShot(x, y, speed float64) *Shot {
	s := &Shot{ID: w.spawnID(), X: x, Y: y, VY: -speed, Alive: true}
	w.EnemyShots = append(w.EnemyShots, s)
	return s
}

// compactEnemies drops despawned wave members in one pass.
func (w *World) compactEnemies() {
	alive := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	w.Enemies = alive
}

// compactShots drops despawned projectiles of both kinds in one pass.
func (w *World) compactShots() {
	alive := w.PlayerShots[:0]
	for _, s := range w.PlayerShots {
		if s.Alive {
			alive = append(alive, s)
		}
	}
	w.PlayerShots = alive

	alive = w.EnemyShots[:0]
	for _, s := range w.EnemyShots {
		if s.Alive {
			alive = append(alive, s)
		}
	}
	w.EnemyShots = alive
}

// clearShots despawns every projectile of both kinds.
func (w *World) clearShots() {
	w.PlayerShots = w.PlayerShots[:0]
	w.EnemyShots = w.EnemyShots[:0]
}

// setTerminal moves the phase out of StatePlaying. The first transition in
// a frame wins; re-evaluations are no-ops until a controller reset.
func (w *World) setTerminal(p GamePhase) {
	if w.Phase == StatePlaying {
		w.Phase = p
	}
}
