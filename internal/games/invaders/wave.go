package invaders

// spawnWave fills the world with a fresh enemy grid. The grid is centered
// horizontally; rows stack upward from the configured start line so higher
// rows sit deeper in the formation. The sweep direction starts rightward.
func (g *Game) spawnWave() {
	f := g.cfg.Formation
	startX := -float64(f.Cols-1) / 2.0 * f.SpacingX
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			g.world.SpawnEnemy(startX+float64(col)*f.SpacingX, f.StartY+float64(row)*f.SpacingY)
		}
	}
	g.world.Dir = 1
}
