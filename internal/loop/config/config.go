// Package config centralizes all tunable game parameters.
package config

import (
	"time"

	env "github.com/tomz197/career-run/internal/config"
)

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Terminal bounds. Larger terminals are letterboxed.
const (
	MinTermWidth  = 60
	MinTermHeight = 20
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Scoring
const (
	ScoreAsteroid = 100
	ScoreDrone    = 500
)

// Player
const (
	InitialShield = 100
	MaxShield     = 100
	LowShield     = 30 // HUD turns red below this
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Ending crawl
const (
	CrawlStep    = 0.04 // percent per reference frame
	CrawlMax     = 100
	CrawlKeyRate = 25.0 // percent per second while Up/Down is held
)

// Radar
const (
	RadarRange   = 600 // enemies farther ahead than this are not plotted
	RadarWidth   = 22  // inner columns
	RadarHeight  = 6   // inner rows (12 sub-rows)
	RadarBehind  = 30  // how far behind the ship the radar still looks
	RadarMinCols = 90  // narrower terminals hide the radar and timeline
)

// SSH sessions.
const (
	IdleTimeout     = 5 * time.Minute  // disconnect after this long without input
	IdleWarn        = 30 * time.Second // warning shown this long before disconnect
	MaxSessions     = 64
	TopScoreCount   = 5
	ShutdownDisplay = 5 * time.Second // shutdown notice shown before disconnect
	ShutdownTimeout = 8 * time.Second // how long the server waits for sessions to leave
)

// Starfield
const (
	StarCount  = 400
	StarSpread = 400
)

// Tuning holds the simulation constants. A Tuning is read-only once a world
// is built from it.
type Tuning struct {
	ShipSpeed        float64       // forward units per reference frame
	RotationSpeed    float64       // ship tilt easing factor
	MaxX             float64       // lateral clamp
	MaxY             float64       // vertical clamp
	CameraLag        float64       // camera easing factor
	LaserCooldown    time.Duration // minimum gap between volleys
	TotalDistance    float64       // distance that completes the run
	LaserSpeed       float64       // units per second
	EnemySpawnChance float64       // per reference frame
	EnemyDamage      float64       // shield lost per hit
	DroneSpeed       float64       // drone advance, units per second

	SlowZoneRadius  float64
	SlowZoneFactor  float64
	MilestoneWindow float64
	SpeedSmoothing  float64
	ManeuverForce   float64
	MaxStrafeSpeed  float64
	StrafeDamping   float64
	ProjectileRange float64
	HitRadius       float64 // projectile vs enemy
	ShipHitRadius   float64 // enemy vs ship
	SpawnAhead      float64
	CullBehind      float64
	DroneShare      float64
	EndingSpeed     float64 // units per second during the ending
	EndingRecenter  float64
	FieldSpread     float64
	ReferenceFPS    float64
	MaxFrameDelta   time.Duration
}

// DefaultTuning returns the stock game constants.
func DefaultTuning() Tuning {
	return Tuning{
		ShipSpeed:        2.0,
		RotationSpeed:    0.1,
		MaxX:             30,
		MaxY:             16,
		CameraLag:        0.08,
		LaserCooldown:    120 * time.Millisecond,
		TotalDistance:    12000,
		LaserSpeed:       600,
		EnemySpawnChance: 0.008,
		EnemyDamage:      5,
		DroneSpeed:       15,

		SlowZoneRadius:  400,
		SlowZoneFactor:  0.3,
		MilestoneWindow: 100,
		SpeedSmoothing:  0.05,
		ManeuverForce:   0.25,
		MaxStrafeSpeed:  0.35,
		StrafeDamping:   0.94,
		ProjectileRange: 300,
		HitRadius:       6,
		ShipHitRadius:   6,
		SpawnAhead:      900,
		CullBehind:      20,
		DroneShare:      0.4,
		EndingSpeed:     80,
		EndingRecenter:  0.05,
		FieldSpread:     1.8,
		ReferenceFPS:    60,
		MaxFrameDelta:   100 * time.Millisecond,
	}
}

// TuningFromEnv overlays CAREER_RUN_* variables on DefaultTuning. It is read
// once at startup.
func TuningFromEnv() Tuning {
	t := DefaultTuning()
	t.ShipSpeed = env.GetEnvFloat("CAREER_RUN_SHIP_SPEED", t.ShipSpeed)
	t.RotationSpeed = env.GetEnvFloat("CAREER_RUN_ROTATION_SPEED", t.RotationSpeed)
	t.MaxX = env.GetEnvFloat("CAREER_RUN_MAX_X", t.MaxX)
	t.MaxY = env.GetEnvFloat("CAREER_RUN_MAX_Y", t.MaxY)
	t.CameraLag = env.GetEnvFloat("CAREER_RUN_CAMERA_LAG", t.CameraLag)
	t.LaserCooldown = env.GetEnvDuration("CAREER_RUN_LASER_COOLDOWN", t.LaserCooldown)
	t.TotalDistance = env.GetEnvFloat("CAREER_RUN_TOTAL_DISTANCE", t.TotalDistance)
	t.LaserSpeed = env.GetEnvFloat("CAREER_RUN_LASER_SPEED", t.LaserSpeed)
	t.EnemySpawnChance = env.GetEnvFloat("CAREER_RUN_ENEMY_SPAWN_CHANCE", t.EnemySpawnChance)
	t.EnemyDamage = env.GetEnvFloat("CAREER_RUN_ENEMY_DAMAGE", t.EnemyDamage)
	t.DroneSpeed = env.GetEnvFloat("CAREER_RUN_DRONE_SPEED", t.DroneSpeed)
	return t
}

// Frames converts an elapsed duration into reference frames.
func (t Tuning) Frames(dt time.Duration) float64 {
	return dt.Seconds() * t.ReferenceFPS
}
