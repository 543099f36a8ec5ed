// Package invaders implements a fixed-viewport formation shooter.
// A player ship slides along the bottom of the world trading fire with an
// enemy grid that sweeps side to side and drops toward the floor. The
// simulation is a pure fixed-timestep core: world coordinates are float64
// with the origin at the viewport center and +y up, and every frame is a
// deterministic function of the previous state, the tick delta and the
// frame's input.
package invaders

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// Rendering glyphs.
const (
	enemyChar      = '▼'
	playerChar     = '▲'
	playerLeftArm  = '◢'
	playerRightArm = '◣'
	playerShotChar = '│'
	enemyShotChar  = '●'
	floorChar      = '─'
)

// Number of screen rows reserved above the playfield for the HUD.
const hudRows = 2

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       int
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "classic":
		difficultyPreset = config.DifficultyClassic
	default:
		difficultyPreset = ""
	}
}

// SetStartLevel sets the level a fresh run begins at. Values below 2 keep
// the default of level 1.
func SetStartLevel(level int) {
	startLevel = level
}

// Game implements the invaders simulation and its terminal presentation.
type Game struct {
	cfg     config.InvadersConfig
	runtime core.RuntimeConfig

	world *World

	// Firing subsystem state
	playerGun Cooldown
	enemyGun  Cooldown

	// Player respawn scheduling
	respawn        Cooldown
	respawnPending bool

	paused    bool
	dt        float64
	tickCount int
	rng       *rand.Rand

	// Screen size check
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new invaders game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "invaders"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Invaders"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	// Load game config
	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		cfg = config.DefaultInvadersConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyInvadersPreset(&cfg, difficultyPreset)
	}

	g.resetWith(cfg, runtime)
}

// resetWith rebuilds the run from an explicit config. Restarts after a
// loss go through here too, so a restarted run is indistinguishable from
// a fresh one.
func (g *Game) resetWith(cfg config.InvadersConfig, runtime core.RuntimeConfig) {
	g.cfg = cfg
	g.runtime = runtime

	// Fixed timestep derived from the platform tick rate
	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.dt = 1 / float64(tickRate)

	g.rng = rand.New(rand.NewSource(runtime.Seed))

	// Check screen size
	g.minScreenW = 40
	g.minScreenH = 16
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	level := 1
	if startLevel > 1 {
		level = startLevel
	}

	// Initialize world state
	g.world = newWorld()
	g.world.Lives = cfg.Rules.Lives
	g.world.Level = level
	g.world.Speed = sweepSpeed(cfg, level)
	g.world.SpawnPlayer(cfg.Player.HomeX, cfg.Player.HomeY)

	g.playerGun = NewCooldown(cfg.Player.FireCooldown)
	g.enemyGun = NewCooldown(cfg.Formation.FireCooldown)
	g.respawn = NewCooldown(cfg.Player.RespawnDelay)
	g.respawnPending = false
	g.paused = false
	g.tickCount = 0

	g.spawnWave()
}

// sweepSpeed returns the formation sweep speed for a level.
func sweepSpeed(cfg config.InvadersConfig, level int) float64 {
	return cfg.Formation.BaseSpeed + float64(level-1)*cfg.Formation.SpeedPerLevel
}

// Step advances the game by one tick. Systems run in a fixed order every
// frame: movement, firing, collision, progression. Outside StatePlaying
// the systems are inert and only the restart/advance inputs are read.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && g.world.Phase == StatePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Terminal states wait for the transition inputs
	if g.world.Phase != StatePlaying {
		g.handleTransition(in)
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	g.stepPlayer(in)
	g.stepShots()
	g.stepFormation()
	g.stepFiring(in)
	g.resolveCollisions()
	g.checkProgression()

	return core.StepResult{State: g.State()}
}

// checkProgression evaluates the terminal conditions, loss first: any
// enemy at or below the floor line, or any enemy overlapping the player
// ship, loses the run; an empty wave that did not just lose wins it.
func (g *Game) checkProgression() {
	if g.world.Phase != StatePlaying {
		return
	}

	for _, e := range g.world.Enemies {
		if e.Y <= g.cfg.World.FloorY {
			g.world.setTerminal(StateLost)
			return
		}
	}

	if p := g.world.Player; p != nil {
		box := g.playerBox(p)
		for _, e := range g.world.Enemies {
			if g.enemyBox(e).Overlaps(box) {
				g.world.setTerminal(StateLost)
				return
			}
		}
	}

	if len(g.world.Enemies) == 0 {
		g.world.setTerminal(StateWon)
	}
}

// handleTransition reads the restart/advance inputs while the run sits in
// a terminal state. A lost run restarts from scratch; a won run launches
// the next level, carrying score and lives over.
func (g *Game) handleTransition(in core.InputFrame) {
	switch g.world.Phase {
	case StateLost:
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
	case StateWon:
		if in.Has(core.ActionAdvance) && len(g.world.Enemies) == 0 {
			g.advanceLevel()
		}
	}
}

// advanceLevel starts the next wave after a clear. Score and lives carry
// over, the sweep speed grows by the per-level increment, leftover
// projectiles despawn and the ship returns home.
func (g *Game) advanceLevel() {
	g.world.Level++
	g.world.Speed = sweepSpeed(g.cfg, g.world.Level)
	g.world.clearShots()
	g.world.SpawnPlayer(g.cfg.Player.HomeX, g.cfg.Player.HomeY)
	g.respawnPending = false
	g.playerGun.Reset()
	g.enemyGun.Reset()
	g.respawn.Reset()
	g.spawnWave()
	g.world.Phase = StatePlaying
}

// worldToCell maps a world-space point to a screen cell. World x spans
// the full screen width; y flips because world +y points up while screen
// rows grow downward. The top hudRows rows stay out of the playfield.
func (g *Game) worldToCell(dst *core.Screen, x, y float64) (int, int) {
	w := g.cfg.World
	fieldH := dst.Height() - hudRows
	cx := int((x + w.Width/2) / w.Width * float64(dst.Width()))
	cy := hudRows + int((w.Height/2-y)/w.Height*float64(fieldH))
	return cx, cy
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	g.renderFloor(dst)
	g.renderEnemies(dst)
	g.renderShots(dst)
	g.renderPlayer(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the score, lives, level and sweep speed indicators.
func (g *Game) renderHUD(dst *core.Screen) {
	scoreText := fmt.Sprintf("Score: %d", g.world.Score)
	dst.DrawText(1, 0, scoreText)

	livesText := fmt.Sprintf("Lives: %d", g.world.Lives)
	dst.DrawTextCentered(0, livesText)

	rightText := fmt.Sprintf("Level: %d  Speed: %.0f", g.world.Level, g.world.Speed)
	dst.DrawText(dst.Width()-len(rightText)-1, 0, rightText)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderFloor marks the line enemies must not reach.
func (g *Game) renderFloor(dst *core.Screen) {
	_, cy := g.worldToCell(dst, 0, g.cfg.World.FloorY)
	for x := 0; x < dst.Width(); x++ {
		dst.SetCell(x, cy, floorChar, core.ColorGray)
	}
}

// renderEnemies draws the wave.
func (g *Game) renderEnemies(dst *core.Screen) {
	for _, e := range g.world.Enemies {
		cx, cy := g.worldToCell(dst, e.X, e.Y)
		dst.SetCell(cx, cy, enemyChar, core.ColorGreen)
	}
}

// renderShots draws projectiles of both kinds.
func (g *Game) renderShots(dst *core.Screen) {
	for _, s := range g.world.PlayerShots {
		cx, cy := g.worldToCell(dst, s.X, s.Y)
		dst.SetCell(cx, cy, playerShotChar, core.ColorYellow)
	}
	for _, s := range g.world.EnemyShots {
		cx, cy := g.worldToCell(dst, s.X, s.Y)
		dst.SetCell(cx, cy, enemyShotChar, core.ColorRed)
	}
}

// renderPlayer draws the player ship as a three-cell wedge.
func (g *Game) renderPlayer(dst *core.Screen) {
	p := g.world.Player
	if p == nil {
		return
	}
	cx, cy := g.worldToCell(dst, p.X, p.Y)
	dst.SetCell(cx-1, cy, playerLeftArm, core.ColorCyan)
	dst.SetCell(cx, cy, playerChar, core.ColorCyan)
	dst.SetCell(cx+1, cy, playerRightArm, core.ColorCyan)
}

// renderOverlay draws the pause/terminal message boxes and status hints.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case g.world.Phase == StateLost:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.world.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case g.world.Phase == StateWon:
		if len(g.world.Enemies) == 0 {
			subtitle := fmt.Sprintf("Score: %d  |  Press ENTER for level %d", g.world.Score, g.world.Level+1)
			g.drawCenteredBox(dst, "WAVE CLEAR!", subtitle)
		} else {
			// Score-threshold win: the run ends here
			subtitle := fmt.Sprintf("Final Score: %d", g.world.Score)
			g.drawCenteredBox(dst, "YOU WIN!", subtitle)
		}

	case g.respawnPending:
		dst.DrawTextCentered(dst.Height()-1, "Get ready...")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// State returns the current game state. GameOver reports only a lost run;
// a cleared wave keeps the run alive and waits for the advance input.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score,
		Level:    g.world.Level,
		GameOver: g.world.Phase == StateLost,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}
