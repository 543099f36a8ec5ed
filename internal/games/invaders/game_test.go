package invaders

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// testRuntime returns the runtime config used across tests.
func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame builds a game on the default gameplay config, bypassing any
// config file on disk so every test sees the same tuning.
func newTestGame(seed int64) *Game {
	g := New()
	g.resetWith(config.DefaultInvadersConfig(), testRuntime(seed))
	return g
}

// newTestGameWith builds a game on a tweaked copy of the default config.
func newTestGameWith(seed int64, mutate func(*config.InvadersConfig)) *Game {
	cfg := config.DefaultInvadersConfig()
	mutate(&cfg)
	g := New()
	g.resetWith(cfg, testRuntime(seed))
	return g
}

// frame builds an input frame with the given actions held.
func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestWaveLayout(t *testing.T) {
	g := newTestGame(1)
	f := g.cfg.Formation

	want := f.Rows * f.Cols
	if len(g.world.Enemies) != want {
		t.Fatalf("Wave should spawn %d enemies, got %d", want, len(g.world.Enemies))
	}

	// Grid is centered horizontally and stacks upward from the start line
	startX := -float64(f.Cols-1) / 2.0 * f.SpacingX
	for i, e := range g.world.Enemies {
		row := i / f.Cols
		col := i % f.Cols
		wantX := startX + float64(col)*f.SpacingX
		wantY := f.StartY + float64(row)*f.SpacingY
		if e.X != wantX || e.Y != wantY {
			t.Errorf("Enemy %d should spawn at (%g, %g), got (%g, %g)", i, wantX, wantY, e.X, e.Y)
		}
	}

	// Every enemy gets a unique id
	seen := make(map[int]bool)
	for _, e := range g.world.Enemies {
		if seen[e.ID] {
			t.Errorf("Duplicate enemy id %d", e.ID)
		}
		seen[e.ID] = true
	}

	if g.world.Dir != 1 {
		t.Errorf("Fresh wave should sweep right, dir=%g", g.world.Dir)
	}
}

func TestPlayerMovement(t *testing.T) {
	g := newTestGame(1)
	home := g.cfg.Player.HomeX

	// Hold right for 10 ticks
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionRight))
	}
	want := home + 10*g.cfg.Player.Speed*g.dt
	if math.Abs(g.world.Player.X-want) > 1e-9 {
		t.Errorf("Player should be at %g after 10 right ticks, got %g", want, g.world.Player.X)
	}

	// Opposite directions cancel out
	before := g.world.Player.X
	g.Step(frame(core.ActionLeft, core.ActionRight))
	if g.world.Player.X != before {
		t.Errorf("Holding both directions should not move the player, was %g, now %g", before, g.world.Player.X)
	}
}

func TestPlayerClampedToViewport(t *testing.T) {
	// Silence the enemy gun so the ship survives the long walk
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.FireCooldown = 0
	})
	bound := g.cfg.World.Width/2 - g.cfg.Player.HalfWidth

	// Hold right long enough to cross the whole world
	for i := 0; i < 2000; i++ {
		g.Step(frame(core.ActionRight))
	}
	if g.world.Player.X != bound {
		t.Errorf("Player should clamp at %g, got %g", bound, g.world.Player.X)
	}

	for i := 0; i < 4000; i++ {
		g.Step(frame(core.ActionLeft))
	}
	if g.world.Player.X != -bound {
		t.Errorf("Player should clamp at %g, got %g", -bound, g.world.Player.X)
	}
}

func TestPlayerFireCooldown(t *testing.T) {
	// Park the wave far above the shot cull line and silence the enemy gun
	// so player shots live a clean lifecycle.
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.StartY = 10000
		cfg.Formation.FireCooldown = 0
	})

	// Collect the ticks of the first three shots while holding fire
	var shotTicks []int
	prev := 0
	for i := 1; i <= 200 && len(shotTicks) < 3; i++ {
		g.Step(frame(core.ActionFire))
		if n := len(g.world.PlayerShots); n > prev {
			shotTicks = append(shotTicks, i)
		}
		prev = len(g.world.PlayerShots)
	}
	if len(shotTicks) < 3 {
		t.Fatalf("Expected 3 shots within 200 ticks, got %d", len(shotTicks))
	}

	// The first shot waits out a full cooldown from the cold start
	minTicks := int(g.cfg.Player.FireCooldown / g.dt)
	if shotTicks[0] < minTicks || shotTicks[0] > minTicks+2 {
		t.Errorf("First shot at tick %d, want about %d", shotTicks[0], minTicks)
	}

	// Held fire produces evenly spaced shots
	d1 := shotTicks[1] - shotTicks[0]
	d2 := shotTicks[2] - shotTicks[1]
	if d1 != d2 {
		t.Errorf("Shot intervals should be equal, got %d and %d", d1, d2)
	}
}

func TestFireReadinessKeptWhileIdle(t *testing.T) {
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.StartY = 10000
		cfg.Formation.FireCooldown = 0
	})

	// Let the cooldown elapse without pressing fire
	for i := 0; i < 100; i++ {
		g.Step(frame())
	}
	if len(g.world.PlayerShots) != 0 {
		t.Fatalf("No shot should spawn without the fire input, got %d", len(g.world.PlayerShots))
	}

	// The accumulated readiness fires on the very next fire press
	g.Step(frame(core.ActionFire))
	if len(g.world.PlayerShots) != 1 {
		t.Errorf("Ready gun should fire immediately on input, got %d shots", len(g.world.PlayerShots))
	}

	p := g.world.Player
	s := g.world.PlayerShots[0]
	if s.X != p.X {
		t.Errorf("Shot should spawn at player x=%g, got %g", p.X, s.X)
	}
	if s.VY <= 0 {
		t.Errorf("Player shot should travel up, VY=%g", s.VY)
	}
}

func TestEnemyFireDisabled(t *testing.T) {
	// A zero cooldown disables the enemy gun (the classic preset does this)
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.FireCooldown = 0
	})

	for i := 0; i < 600; i++ {
		g.Step(frame())
	}
	if len(g.world.EnemyShots) != 0 {
		t.Errorf("Disabled enemy gun should never fire, got %d shots", len(g.world.EnemyShots))
	}
}

func TestEnemyFireDeterministic(t *testing.T) {
	g1 := newTestGame(99)
	g2 := newTestGame(99)

	// Long enough for the first volley, short enough that it is still in
	// flight when we look at it.
	for i := 0; i < 90; i++ {
		g1.Step(frame())
		g2.Step(frame())
	}

	if len(g1.world.EnemyShots) == 0 {
		t.Fatal("Enemy gun should have fired within 1.5 seconds")
	}
	if g1.world.EnemyShots[0].VY >= 0 {
		t.Errorf("Enemy shot should travel down, VY=%g", g1.world.EnemyShots[0].VY)
	}

	// Same seed picks the same shooters
	s1 := g1.Snapshot()
	s2 := g2.Snapshot()
	if len(s1.EnemyShots) != len(s2.EnemyShots) {
		t.Fatalf("Shot counts differ: %d vs %d", len(s1.EnemyShots), len(s2.EnemyShots))
	}
	for i := range s1.EnemyShots {
		if s1.EnemyShots[i] != s2.EnemyShots[i] {
			t.Errorf("Enemy shot %d differs: %+v vs %+v", i, s1.EnemyShots[i], s2.EnemyShots[i])
		}
	}
}

func TestShotCulling(t *testing.T) {
	g := newTestGame(1)

	// One shot just below the top cull line, one just above the bottom one
	g.world.SpawnPlayerShot(0, g.cfg.Shots.TopCullY-1, g.cfg.Shots.Speed)
	g.world.SpawnEnemyShot(0, g.cfg.Shots.BottomCullY+1, g.cfg.Shots.Speed)
	if len(g.world.PlayerShots) != 1 || len(g.world.EnemyShots) != 1 {
		t.Fatal("Shots should spawn")
	}

	g.Step(frame())

	if len(g.world.PlayerShots) != 0 {
		t.Errorf("Player shot should despawn past the top cull line, %d left", len(g.world.PlayerShots))
	}
	if len(g.world.EnemyShots) != 0 {
		t.Errorf("Enemy shot should despawn past the bottom cull line, %d left", len(g.world.EnemyShots))
	}
}

func TestShotKillsEnemy(t *testing.T) {
	g := newTestGame(1)
	target := g.world.Enemies[0]
	waveSize := len(g.world.Enemies)

	g.world.SpawnPlayerShot(target.X, target.Y, g.cfg.Shots.Speed)
	g.Step(frame())

	if len(g.world.Enemies) != waveSize-1 {
		t.Errorf("Wave should lose one enemy, got %d of %d", len(g.world.Enemies), waveSize)
	}
	for _, e := range g.world.Enemies {
		if e.ID == target.ID {
			t.Errorf("Enemy %d should be despawned", target.ID)
		}
	}
	if len(g.world.PlayerShots) != 0 {
		t.Errorf("Shot should despawn with its kill, %d left", len(g.world.PlayerShots))
	}
	if g.world.Score != g.cfg.Rules.KillPoints {
		t.Errorf("Kill should score %d, got %d", g.cfg.Rules.KillPoints, g.world.Score)
	}
}

func TestShotHitsOnlyFirstEnemy(t *testing.T) {
	g := newTestGame(1)

	// Two enemies close enough that both overlap the same shot
	g.world.Enemies = g.world.Enemies[:0]
	first := g.world.SpawnEnemy(0, 150)
	second := g.world.SpawnEnemy(5, 150)
	g.world.SpawnPlayerShot(0, 150, g.cfg.Shots.Speed)

	g.Step(frame())

	if len(g.world.Enemies) != 1 {
		t.Fatalf("Exactly one enemy should die, %d left", len(g.world.Enemies))
	}
	if g.world.Enemies[0].ID != second.ID {
		t.Errorf("First enemy in wave order (%d) should take the hit; survivor is %d, want %d",
			first.ID, g.world.Enemies[0].ID, second.ID)
	}
	if g.world.Score != g.cfg.Rules.KillPoints {
		t.Errorf("One shot scores one kill, got %d points", g.world.Score)
	}
}

func TestFormationReversal(t *testing.T) {
	g := newTestGame(1)
	maxX := g.cfg.World.Width/2 - g.cfg.World.EdgeMargin

	// Shift the wave so the next rightward step would cross the band edge
	rightmost := g.world.Enemies[0].X
	for _, e := range g.world.Enemies {
		if e.X > rightmost {
			rightmost = e.X
		}
	}
	shift := maxX - rightmost - 0.1
	for _, e := range g.world.Enemies {
		e.X += shift
	}

	type pos struct{ x, y float64 }
	before := make(map[int]pos)
	for _, e := range g.world.Enemies {
		before[e.ID] = pos{e.X, e.Y}
	}

	g.Step(frame())

	if g.world.Dir != -1 {
		t.Errorf("Wave should reverse at the band edge, dir=%g", g.world.Dir)
	}
	for _, e := range g.world.Enemies {
		b := before[e.ID]
		if e.X != b.x {
			t.Errorf("Enemy %d should not move sideways on the reversal tick, was %g, now %g", e.ID, b.x, e.X)
		}
		if e.Y != b.y-g.cfg.Formation.StepDown {
			t.Errorf("Enemy %d should step down by %g, was %g, now %g", e.ID, g.cfg.Formation.StepDown, b.y, e.Y)
		}
	}

	// The tick after a reversal sweeps the other way, without a second drop
	g.Step(frame())
	for _, e := range g.world.Enemies {
		b := before[e.ID]
		if e.X >= b.x {
			t.Errorf("Enemy %d should move left after reversing, was %g, now %g", e.ID, b.x, e.X)
		}
		if e.Y != b.y-g.cfg.Formation.StepDown {
			t.Errorf("Enemy %d should only drop once per reversal", e.ID)
		}
	}
}

func TestFormationStaysInsideBand(t *testing.T) {
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.FireCooldown = 0
	})
	minX := -g.cfg.World.Width/2 + g.cfg.World.EdgeMargin
	maxX := g.cfg.World.Width/2 - g.cfg.World.EdgeMargin

	reversals := 0
	prevDir := g.world.Dir
	for i := 0; i < 3600; i++ {
		g.Step(frame())
		for _, e := range g.world.Enemies {
			if e.X < minX || e.X > maxX {
				t.Fatalf("Tick %d: enemy %d at x=%g outside band [%g, %g]", i, e.ID, e.X, minX, maxX)
			}
		}
		if g.world.Dir != prevDir {
			reversals++
			prevDir = g.world.Dir
		}
	}

	if reversals == 0 {
		t.Error("A 60 second sweep should hit the band edge at least once")
	}
	if g.world.Phase != StatePlaying {
		t.Errorf("Run should still be in progress, phase=%s", g.world.Phase)
	}
}

func TestEnemyShotHitsPlayer(t *testing.T) {
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.FireCooldown = 0
	})
	startLives := g.world.Lives

	// Wander off home, then take a hit
	for i := 0; i < 60; i++ {
		g.Step(frame(core.ActionRight))
	}
	p := g.world.Player
	g.world.SpawnEnemyShot(p.X, p.Y+10, g.cfg.Shots.Speed)
	g.Step(frame())

	if g.world.Lives != startLives-1 {
		t.Errorf("Hit should cost one life, lives=%d", g.world.Lives)
	}
	if g.world.Player != nil {
		t.Error("Hit player should despawn until the respawn delay elapses")
	}
	if !g.respawnPending {
		t.Error("Respawn should be scheduled with lives remaining")
	}
	if len(g.world.EnemyShots) != 0 {
		t.Errorf("Enemy shot should despawn on hit, %d left", len(g.world.EnemyShots))
	}
	if g.world.Phase != StatePlaying {
		t.Errorf("Run should continue with lives remaining, phase=%s", g.world.Phase)
	}

	// The ship comes back at the home position, not where it died
	wait := int(g.cfg.Player.RespawnDelay/g.dt) + 2
	for i := 0; i < wait; i++ {
		g.Step(frame())
	}
	if g.world.Player == nil {
		t.Fatal("Player should respawn after the delay")
	}
	if g.world.Player.X != g.cfg.Player.HomeX || g.world.Player.Y != g.cfg.Player.HomeY {
		t.Errorf("Player should respawn at home (%g, %g), got (%g, %g)",
			g.cfg.Player.HomeX, g.cfg.Player.HomeY, g.world.Player.X, g.world.Player.Y)
	}
	if g.respawnPending {
		t.Error("Respawn flag should clear after the ship returns")
	}
}

func TestLastLifeLosesGame(t *testing.T) {
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.FireCooldown = 0
	})
	g.world.Lives = 1

	p := g.world.Player
	g.world.SpawnEnemyShot(p.X, p.Y+10, g.cfg.Shots.Speed)
	result := g.Step(frame())

	if g.world.Lives != 0 {
		t.Errorf("Lives should floor at 0, got %d", g.world.Lives)
	}
	if g.world.Phase != StateLost {
		t.Errorf("Losing the last life should end the run in the same tick, phase=%s", g.world.Phase)
	}
	if !result.State.GameOver {
		t.Error("State should report game over on a lost run")
	}
	if g.respawnPending {
		t.Error("No respawn should be scheduled on the last life")
	}
}

func TestEnemyReachingFloorLosesGame(t *testing.T) {
	g := newTestGame(1)
	g.world.Enemies[0].Y = g.cfg.World.FloorY - 1

	g.Step(frame())

	if g.world.Phase != StateLost {
		t.Errorf("Enemy at the floor should lose the run, phase=%s", g.world.Phase)
	}
}

func TestEnemyTouchingPlayerLosesGame(t *testing.T) {
	g := newTestGame(1)
	p := g.world.Player
	g.world.Enemies[0].X = p.X
	g.world.Enemies[0].Y = p.Y

	g.Step(frame())

	if g.world.Phase != StateLost {
		t.Errorf("Enemy overlapping the player should lose the run, phase=%s", g.world.Phase)
	}
}

func TestWaveClearWins(t *testing.T) {
	g := newTestGame(1)
	g.world.Score = 700
	g.world.Enemies = g.world.Enemies[:0]

	result := g.Step(frame())

	if g.world.Phase != StateWon {
		t.Errorf("Empty wave should win the run, phase=%s", g.world.Phase)
	}
	if result.State.GameOver {
		t.Error("A won run is not game over; it waits for the advance input")
	}
	if g.world.Score != 700 {
		t.Errorf("Winning should not touch the score, got %d", g.world.Score)
	}
}

func TestAdvanceStartsNextLevel(t *testing.T) {
	g := newTestGame(1)
	g.world.Score = 700
	g.world.Lives = 2
	g.world.Enemies = g.world.Enemies[:0]
	g.Step(frame())

	if g.world.Phase != StateWon {
		t.Fatalf("Setup should reach StateWon, got %s", g.world.Phase)
	}

	// Stray projectiles must not survive into the next level
	g.world.SpawnPlayerShot(0, 0, g.cfg.Shots.Speed)
	g.world.SpawnEnemyShot(0, 0, g.cfg.Shots.Speed)

	g.Step(frame(core.ActionAdvance))

	if g.world.Phase != StatePlaying {
		t.Errorf("Advance should resume play, phase=%s", g.world.Phase)
	}
	if g.world.Level != 2 {
		t.Errorf("Advance should move to level 2, got %d", g.world.Level)
	}
	wantSpeed := g.cfg.Formation.BaseSpeed + g.cfg.Formation.SpeedPerLevel
	if g.world.Speed != wantSpeed {
		t.Errorf("Level 2 sweep speed should be %g, got %g", wantSpeed, g.world.Speed)
	}
	if len(g.world.Enemies) != g.cfg.Formation.Rows*g.cfg.Formation.Cols {
		t.Errorf("Advance should spawn a full wave, got %d enemies", len(g.world.Enemies))
	}
	if len(g.world.PlayerShots) != 0 || len(g.world.EnemyShots) != 0 {
		t.Error("Advance should clear leftover projectiles")
	}
	if g.world.Score != 700 || g.world.Lives != 2 {
		t.Errorf("Score and lives should carry over, got score=%d lives=%d", g.world.Score, g.world.Lives)
	}
	if g.world.Player.X != g.cfg.Player.HomeX || g.world.Player.Y != g.cfg.Player.HomeY {
		t.Error("Advance should return the ship home")
	}
}

func TestAdvanceRequiresEmptyWave(t *testing.T) {
	g := newTestGame(1)
	g.world.Phase = StateWon // Contrived: won with enemies still present

	g.Step(frame(core.ActionAdvance))

	if g.world.Level != 1 {
		t.Errorf("Advance must not trigger while enemies remain, level=%d", g.world.Level)
	}
	if g.world.Phase != StateWon {
		t.Errorf("Phase should stay won, got %s", g.world.Phase)
	}
}

func TestStartLevelAppliesToFreshRun(t *testing.T) {
	SetStartLevel(4)
	defer SetStartLevel(0)

	g := newTestGame(1)

	if g.world.Level != 4 {
		t.Fatalf("Run should start at level 4, got %d", g.world.Level)
	}
	wantSpeed := g.cfg.Formation.BaseSpeed + 3*g.cfg.Formation.SpeedPerLevel
	if g.world.Speed != wantSpeed {
		t.Errorf("Level 4 sweep speed should be %g, got %g", wantSpeed, g.world.Speed)
	}
	if g.world.Score != 0 || g.world.Lives != g.cfg.Rules.Lives {
		t.Errorf("Starting level must not change score or lives, got score=%d lives=%d",
			g.world.Score, g.world.Lives)
	}
}

func TestScoreThresholdWin(t *testing.T) {
	// Legacy rule: reaching win_score ends the run even mid-wave
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Rules.WinScore = cfg.Rules.KillPoints
	})

	target := g.world.Enemies[0]
	g.world.SpawnPlayerShot(target.X, target.Y, g.cfg.Shots.Speed)
	result := g.Step(frame())

	if g.world.Phase != StateWon {
		t.Errorf("Reaching the score threshold should win, phase=%s", g.world.Phase)
	}
	if result.State.GameOver {
		t.Error("A score win is not game over")
	}
	if len(g.world.Enemies) == 0 {
		t.Fatal("Setup error: the wave should not be empty")
	}

	// With enemies remaining there is no next level and no restart
	g.Step(frame(core.ActionAdvance))
	if g.world.Level != 1 || g.world.Phase != StateWon {
		t.Error("Advance must not trigger with a non-empty wave")
	}
	g.Step(frame(core.ActionRestart))
	if g.world.Phase != StateWon {
		t.Error("Restart is only valid from a lost run")
	}
}

func TestRestartAfterLoss(t *testing.T) {
	g := newTestGame(7)

	// Restart is a no-op while the run is live
	g.Step(frame(core.ActionRestart))
	if g.tickCount != 1 || g.world.Phase != StatePlaying {
		t.Error("Restart input should be ignored while playing")
	}

	// Force a loss
	g.world.Score = 500
	g.world.Lives = 1
	p := g.world.Player
	g.world.SpawnEnemyShot(p.X, p.Y+10, g.cfg.Shots.Speed)
	g.Step(frame())
	if g.world.Phase != StateLost {
		t.Fatalf("Setup should reach StateLost, got %s", g.world.Phase)
	}

	g.Step(frame(core.ActionRestart))

	if g.world.Phase != StatePlaying {
		t.Errorf("Restart should resume play, phase=%s", g.world.Phase)
	}
	if g.world.Score != 0 {
		t.Errorf("Restart should clear the score, got %d", g.world.Score)
	}
	if g.world.Lives != g.cfg.Rules.Lives {
		t.Errorf("Restart should refill lives to %d, got %d", g.cfg.Rules.Lives, g.world.Lives)
	}
	if g.world.Level != 1 {
		t.Errorf("Restart should return to level 1, got %d", g.world.Level)
	}
	if g.world.Speed != g.cfg.Formation.BaseSpeed {
		t.Errorf("Restart should reset sweep speed to %g, got %g", g.cfg.Formation.BaseSpeed, g.world.Speed)
	}
	if g.tickCount != 0 {
		t.Errorf("Restart should clear tickCount, got %d", g.tickCount)
	}

	// A restarted run is indistinguishable from a fresh one
	fresh := New()
	fresh.Reset(testRuntime(7))
	a := g.Snapshot()
	b := fresh.Snapshot()
	if len(a.Enemies) != len(b.Enemies) {
		t.Fatalf("Wave sizes differ after restart: %d vs %d", len(a.Enemies), len(b.Enemies))
	}
	for i := range a.Enemies {
		if a.Enemies[i] != b.Enemies[i] {
			t.Errorf("Enemy %d differs after restart: %+v vs %+v", i, a.Enemies[i], b.Enemies[i])
		}
	}
	if !a.PlayerAlive || a.PlayerX != b.PlayerX || a.PlayerY != b.PlayerY {
		t.Error("Player should be back at the home position after restart")
	}
}

func TestTerminalStateFreezesWorld(t *testing.T) {
	g := newTestGameWith(1, func(cfg *config.InvadersConfig) {
		cfg.Formation.FireCooldown = 0
	})
	g.world.Lives = 1
	p := g.world.Player
	g.world.SpawnEnemyShot(p.X, p.Y+10, g.cfg.Shots.Speed)
	g.Step(frame())
	if g.world.Phase != StateLost {
		t.Fatalf("Setup should reach StateLost, got %s", g.world.Phase)
	}

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionFire, core.ActionLeft))
	}
	after := g.Snapshot()

	if before.Hash() != after.Hash() {
		t.Error("A terminal run should freeze until restart")
	}
	if after.Tick != before.Tick {
		t.Errorf("Ticks should not advance in a terminal state, %d -> %d", before.Tick, after.Tick)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1)

	g.Step(frame(core.ActionPause))
	if !g.paused {
		t.Error("Game should be paused")
	}

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionRight, core.ActionFire))
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("Nothing should move while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.paused {
		t.Error("Game should be unpaused")
	}
	g.Step(frame(core.ActionRight))
	if g.world.Player.X == before.PlayerX {
		t.Error("Simulation should resume after unpause")
	}
}

func TestPauseIgnoredWhenTerminal(t *testing.T) {
	g := newTestGame(1)
	g.world.Enemies = g.world.Enemies[:0]
	g.Step(frame())
	if g.world.Phase != StateWon {
		t.Fatalf("Setup should reach StateWon, got %s", g.world.Phase)
	}

	g.Step(frame(core.ActionPause))
	if g.paused {
		t.Error("Pause should only toggle during play")
	}
}

func TestGameDeterminism(t *testing.T) {
	// Test that given the same seed and inputs, the game produces identical results
	cfg := testRuntime(12345)

	// Steer side to side and fire in bursts
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%14 < 7 {
			inputSequence[i].Set(core.ActionRight)
		} else {
			inputSequence[i].Set(core.ActionLeft)
		}
		if i%4 == 0 {
			inputSequence[i].Set(core.ActionFire)
		}
	}

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	for i, in := range inputSequence {
		g1.Step(in)
		g2.Step(in)
		s1 := g1.Snapshot()
		s2 := g2.Snapshot()
		if s1.Hash() != s2.Hash() {
			t.Fatalf("Determinism failed at tick %d: hashes differ", i)
		}
	}

	s1 := g1.Snapshot()
	s2 := g2.Snapshot()
	if s1.Score != s2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", s1.Score, s2.Score)
	}
	if s1.Tick != s2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", s1.Tick, s2.Tick)
	}
}

func TestGameReset(t *testing.T) {
	cfg := testRuntime(42)

	g := New()
	g.Reset(cfg)

	// Play a few ticks
	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%2 == 0 {
			in.Set(core.ActionRight)
		}
		if i%5 == 0 {
			in.Set(core.ActionFire)
		}
		g.Step(in)
	}

	// Reset should clear state
	g.Reset(cfg)

	if g.world.Score != 0 {
		t.Errorf("Reset should clear score, got %d", g.world.Score)
	}
	if g.world.Phase != StatePlaying {
		t.Errorf("Reset should set the playing phase, got %s", g.world.Phase)
	}
	if g.paused {
		t.Error("Reset should clear paused flag")
	}
	if g.tickCount != 0 {
		t.Errorf("Reset should clear tickCount, got %d", g.tickCount)
	}
	if len(g.world.Enemies) != g.cfg.Formation.Rows*g.cfg.Formation.Cols {
		t.Errorf("Reset should respawn the full wave, got %d enemies", len(g.world.Enemies))
	}
	if g.world.Player == nil || g.world.Player.X != g.cfg.Player.HomeX {
		t.Error("Reset should place the player at home")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(1)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD should show the score, row was %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Lives: 3") {
		t.Errorf("HUD should show lives, row was %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Level: 1") {
		t.Errorf("HUD should show the level, row was %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Speed: 40") {
		t.Errorf("HUD should show the sweep speed, row was %q", screen.Row(0))
	}

	str := screen.String()
	if !strings.ContainsRune(str, playerChar) {
		t.Error("Render should draw the player ship")
	}
	if !strings.ContainsRune(str, enemyChar) {
		t.Error("Render should draw the wave")
	}

	// The floor line is drawn across its projected row
	_, floorY := g.worldToCell(screen, 0, g.cfg.World.FloorY)
	if screen.Get(0, floorY) != floorChar {
		t.Errorf("Floor line should be drawn at row %d, got %q", floorY, screen.Get(0, floorY))
	}

	// Overlays
	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("Paused game should show the pause overlay")
	}
	g.Step(frame(core.ActionPause))

	g.world.Lives = 1
	p := g.world.Player
	g.world.SpawnEnemyShot(p.X, p.Y+10, g.cfg.Shots.Speed)
	g.Step(frame())
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("Lost game should show the game over overlay")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New()
	g.resetWith(config.DefaultInvadersConfig(), core.RuntimeConfig{
		ScreenW:  30,
		ScreenH:  10,
		TickRate: 60,
		Seed:     1,
	})

	if !g.screenTooSmall {
		t.Fatal("A 30x10 screen should be too small")
	}

	g.Step(frame(core.ActionFire))
	if g.tickCount != 0 {
		t.Error("Simulation should not run on a too-small screen")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Render should explain the size problem")
	}
}

func TestCooldown(t *testing.T) {
	c := NewCooldown(0.5)
	if c.Ready() {
		t.Error("A cold trigger should not be ready")
	}

	// Exact binary fractions keep the arithmetic precise
	if c.Advance(0.25) {
		t.Error("Half the threshold should not be ready")
	}
	if !c.Advance(0.25) {
		t.Error("The full threshold should be ready")
	}

	// The accumulator saturates instead of banking extra time
	c.Advance(0.25)
	c.Advance(0.25)
	if c.Elapsed != 0.5 {
		t.Errorf("Accumulator should saturate at the threshold, got %g", c.Elapsed)
	}

	c.Reset()
	if c.Ready() {
		t.Error("Reset should clear readiness")
	}
	if c.Elapsed != 0 {
		t.Errorf("Reset should clear the accumulator, got %g", c.Elapsed)
	}

	// A zero threshold disables the trigger
	d := NewCooldown(0)
	for i := 0; i < 100; i++ {
		if d.Advance(1) {
			t.Fatal("A disabled trigger should never fire")
		}
	}
}

func TestCompactionPreservesOrder(t *testing.T) {
	w := newWorld()
	w.SpawnEnemy(0, 0)
	w.SpawnEnemy(1, 0)
	w.SpawnEnemy(2, 0)

	w.Enemies[1].Alive = false
	w.compactEnemies()

	if len(w.Enemies) != 2 {
		t.Fatalf("Compaction should drop one enemy, got %d", len(w.Enemies))
	}
	if w.Enemies[0].ID != 1 || w.Enemies[1].ID != 3 {
		t.Errorf("Compaction should preserve spawn order, got ids %d, %d", w.Enemies[0].ID, w.Enemies[1].ID)
	}

	w.SpawnPlayerShot(0, 0, 1)
	w.SpawnEnemyShot(0, 0, 1)
	w.PlayerShots[0].Alive = false
	w.compactShots()
	if len(w.PlayerShots) != 0 {
		t.Error("Dead player shots should compact away")
	}
	if len(w.EnemyShots) != 1 {
		t.Error("Live enemy shots should survive compaction")
	}
}
