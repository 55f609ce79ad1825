// Package object holds the simulated entities: the ship, its camera rig,
// projectiles, enemies, milestone markers and explosion debris.
package object

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration // clamped frame time
	Frames  float64       // Delta in reference frames
	Ship    physics.Vec3  // ship position after this frame's movement
	Tuning  *config.Tuning
	Rand    *rand.Rand
	Spawner Spawner
}

// Object is an updatable entity bound to one scene node.
type Object interface {
	// Update advances the object. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Sync copies the simulated transform onto the object's scene node.
	Sync(s *scene.Scene)

	// NodeID returns the scene node bound to the object.
	NodeID() scene.NodeID
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next sweep.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Binder is implemented by objects created before their scene is known.
// The world binds them when they are spawned.
type Binder interface {
	Bind(s *scene.Scene)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Mortal is an object with a liveness flag.
type Mortal interface {
	Object
	Destructible
}

// Sweep compacts s in place, dropping destroyed objects. Every dropped
// object has its scene node detached and, if pooled, is released.
func Sweep[T Mortal](s []T, sc *scene.Scene) []T {
	kept := s[:0]
	for _, o := range s {
		if o.IsDestroyed() {
			Discard(o, sc)
			continue
		}
		kept = append(kept, o)
	}
	clear(s[len(kept):])
	return kept
}

// Discard detaches obj's node and releases it to its pool. obj must not be
// used afterwards.
func Discard(obj Object, sc *scene.Scene) {
	if sc != nil {
		sc.Detach(obj.NodeID())
	}
	ReleaseObject(obj)
}
