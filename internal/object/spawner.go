package object

import (
	"github.com/tomz197/career-run/internal/physics"
)

// EnemySpawner rolls each frame for a new enemy ahead of the ship.
type EnemySpawner struct{}

// NewEnemySpawner creates a spawner.
func NewEnemySpawner() *EnemySpawner {
	return &EnemySpawner{}
}

// Update spawns at most one enemy through ctx.Spawner. The per-frame chance
// is scaled to the elapsed reference frames.
func (s *EnemySpawner) Update(ctx UpdateContext) (bool, error) {
	t := ctx.Tuning
	if ctx.Rand.Float64() >= physics.Chance(t.EnemySpawnChance, ctx.Frames) {
		return false, nil
	}

	kind := Asteroid
	if ctx.Rand.Float64() < t.DroneShare {
		kind = Drone
	}
	pos := physics.Vec3{
		X: (ctx.Rand.Float64() - 0.5) * t.MaxX * t.FieldSpread,
		Y: (ctx.Rand.Float64() - 0.5) * t.MaxY * t.FieldSpread,
		Z: ctx.Ship.Z - t.SpawnAhead,
	}
	size := 1.5
	if kind == Asteroid {
		size = 2 + ctx.Rand.Float64()*2
	}
	ctx.Spawner.Spawn(NewEnemy(kind, pos, size, nil))
	return false, nil
}
