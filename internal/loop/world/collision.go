package world

import (
	"github.com/tomz197/career-run/internal/object"
	"github.com/tomz197/career-run/internal/physics"
)

// updateProjectiles moves every projectile, expires those out of range
// and, when combat is on, resolves hits against enemies. A projectile
// destroys at most the first live enemy in pool order within HitRadius.
func (w *World) updateProjectiles(ctx object.UpdateContext, combat bool) {
	if combat {
		w.indexEnemies(ctx.Ship)
	}
	for _, p := range w.projectiles {
		if remove, _ := p.Update(ctx); remove {
			continue
		}
		if !combat {
			continue
		}
		if e := w.firstHit(p.Position); e != nil {
			p.MarkDestroyed()
			e.MarkDestroyed()
			w.state.Score += e.Kind.Behavior().Points
			w.sounds.PlayExplosion()
			object.SpawnExplosion(e.Position, killDebris, debrisSpeed, debrisLifetime, ctx)
		}
	}
	w.projectiles = object.Sweep(w.projectiles, w.scene)
}

// indexEnemies loads live enemies into the broad-phase grid, anchored
// around the ship.
func (w *World) indexEnemies(ship physics.Vec3) {
	t := w.tuning
	w.grid.Reset(-(t.MaxX*t.FieldSpread)/2-2*t.HitRadius, ship.Z-t.SpawnAhead-t.ProjectileRange/2)
	for i, e := range w.enemies {
		if !e.IsDestroyed() {
			w.grid.Insert(e.Position, i)
		}
	}
}

// firstHit returns the lowest-indexed live enemy within HitRadius of p.
func (w *World) firstHit(p physics.Vec3) *object.Enemy {
	best := -1
	w.grid.QueryAround(p, func(i int) bool {
		e := w.enemies[i]
		if e.IsDestroyed() || (best >= 0 && i > best) {
			return false
		}
		if physics.WithinRadius(e.Position, p, w.tuning.HitRadius) {
			best = i
		}
		return false
	})
	if best < 0 {
		return nil
	}
	return w.enemies[best]
}

// updateEnemies advances every enemy, culls those behind the ship and,
// when combat is on, applies ship collisions.
func (w *World) updateEnemies(ctx object.UpdateContext, combat bool) {
	for _, e := range w.enemies {
		if remove, _ := e.Update(ctx); remove {
			continue
		}
		if !combat {
			continue
		}
		if physics.WithinRadius(e.Position, ctx.Ship, w.tuning.ShipHitRadius) {
			e.MarkDestroyed()
			w.damage(w.tuning.EnemyDamage)
			w.camera.Kick(w.rng)
			w.sounds.PlayExplosion()
			object.SpawnExplosion(e.Position, hitDebris, debrisSpeed, debrisLifetime, ctx)
		}
	}
	w.enemies = object.Sweep(w.enemies, w.scene)
}

// damage lowers the shield, flooring it at zero.
func (w *World) damage(amount float64) {
	w.state.Shield = max(0, w.state.Shield-amount)
}
