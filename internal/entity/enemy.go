package entity

import (
	"math"
	"math/rand"

	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/go-gl/mathgl/mgl64"
)

// AIState is the enemy's behaviour mode.
type AIState uint8

const (
	Patrol AIState = iota
	Chase
	Search
	Attack
)

func (s AIState) String() string {
	switch s {
	case Patrol:
		return "patrol"
	case Chase:
		return "chase"
	case Search:
		return "search"
	}
	return "attack"
}

const (
	enemyWidth     = 26 // int(35 * 0.75)
	enemyHeight    = 52 // int(70 * 0.75)
	enemyLegLen    = 22
	enemyTorsoH    = 30
	enemyHeadSize  = 22
	enemyClubW     = 7
	enemyClubH     = 30
	enemyMaxHealth = 100

	EnemyDamage       = 10
	EnemyPatrolSpeed  = 1.0
	EnemyChaseSpeed   = 2.2
	EnemyJumpSpeed    = -13.0
	DetectionRadius   = 250.0
	ChaseGiveUpFactor = 1.5
	AttackRange       = 45.0
	AttackCooldown    = 120
	AttackAnimTicks   = 30
	SearchTicks       = 180
	PatrolTurnTicks   = 240

	wallProbe   = 5.0
	attackProbe = 20.0
	swingLimit  = 50.0
)

// Enemy is a melee walker driven by a four-state controller. It has no
// path finding: an unreachable player leaves it walking into the obstacle.
type Enemy struct {
	physics.Body

	State  AIState
	Dir    int // walking direction
	Facing int

	Head, Torso physics.Rect

	CanSee      bool
	LastSeen    mgl64.Vec2
	HasLastSeen bool

	SearchTimer int
	PatrolTurn  int
	AttackTimer int // cooldown until the next swing may start
	AttackAnim  int // ticks left in the current swing

	swingHit  bool
	walkCycle float64
	Swing     float64
}

// NewEnemy creates an enemy whose feet rest on y, centred on x.
func NewEnemy(x, feetY float64) *Enemy {
	e := &Enemy{
		Body:   physics.NewBody(physics.NewRect(x-enemyWidth/2, feetY-enemyHeight, enemyWidth, enemyHeight), physics.SoftFriction, enemyMaxHealth),
		Dir:    -1,
		Facing: -1,
	}
	e.updateParts()
	return e
}

// Update runs perception, the state machine, movement and physics for one
// tick. colliders are the solid rectangles around the enemy.
func (e *Enemy) Update(g *tile.Grid, colliders []physics.Rect, t Target, rng *rand.Rand) {
	if e.AttackTimer > 0 {
		e.AttackTimer--
	}
	e.updateParts()
	e.think(g, colliders, t)
	e.move(colliders, t, rng)

	e.Facing = e.Dir
	if dmg := e.Step(colliders); dmg > 0 {
		e.Hurt(dmg)
	}
	e.animate()
	e.updateParts()
}

func (e *Enemy) think(g *tile.Grid, colliders []physics.Rect, t Target) {
	dist := e.Rect.Center().Sub(t.Rect.Center()).Len()
	eye := tile.CellAt(e.Head.CenterX(), e.Head.CenterY())
	e.CanSee = t.VisibleFrom(g, eye)
	inFront := float64(e.Facing)*(t.Rect.CenterX()-e.Rect.CenterX()) > 0

	switch e.State {
	case Attack:
		e.AttackAnim--
		if e.AttackAnim <= 0 {
			e.State = Chase
			e.AttackTimer = AttackCooldown
		}
	case Patrol:
		if inFront && e.CanSee && dist < DetectionRadius {
			e.State = Chase
		}
	case Chase:
		switch {
		case !e.CanSee || dist > DetectionRadius*ChaseGiveUpFactor:
			e.State = Search
			e.SearchTimer = SearchTicks
		case !hitsAny(e.Rect.Move(float64(e.Dir)*attackProbe, 0), colliders) && dist <= AttackRange && e.AttackTimer <= 0:
			e.State = Attack
			e.AttackAnim = AttackAnimTicks
			e.swingHit = false
		default:
			e.LastSeen = t.Rect.Center()
			e.HasLastSeen = true
		}
	case Search:
		if e.CanSee && dist < DetectionRadius {
			e.State = Chase
			break
		}
		e.SearchTimer--
		if e.SearchTimer <= 0 || (e.HasLastSeen && e.Rect.Contains(e.LastSeen)) {
			e.State = Patrol
		}
	}
}

func (e *Enemy) move(colliders []physics.Rect, t Target, rng *rand.Rand) {
	e.Vel[0] = 0
	if e.State == Attack {
		return
	}

	if e.OnGround {
		dir := float64(e.Dir)
		wall := hitsAny(e.Rect.Move(dir*wallProbe, 0), colliders)
		probe := physics.NewRect(e.Rect.CenterX()+(e.Rect.W/2+5)*dir, e.Rect.Bottom(), 5, 5)
		ground := hitsAny(probe, colliders)

		switch e.State {
		case Patrol:
			e.PatrolTurn++
			if e.PatrolTurn > PatrolTurnTicks && rng.Float64() < 0.5 {
				e.Dir = -e.Dir
				e.PatrolTurn = 0
			}
			if wall {
				e.jump()
			}
		case Chase, Search:
			if wall {
				e.jump()
			} else if !ground && t.Rect.CenterY() < e.Rect.Bottom() {
				e.jump()
			}
		}
	}

	switch e.State {
	case Chase:
		e.Dir = towards(t.Rect.CenterX(), e.Rect.CenterX())
		e.Vel[0] = EnemyChaseSpeed * float64(e.Dir)
	case Search:
		if e.HasLastSeen && math.Abs(e.LastSeen[0]-e.Rect.CenterX()) > 5 {
			e.Dir = towards(e.LastSeen[0], e.Rect.CenterX())
			e.Vel[0] = EnemyPatrolSpeed * float64(e.Dir)
		}
	default:
		e.Vel[0] = EnemyPatrolSpeed * float64(e.Dir)
	}
}

func (e *Enemy) jump() {
	if e.OnGround {
		e.Vel[1] = EnemyJumpSpeed
		e.OnGround = false
	}
}

func (e *Enemy) animate() {
	if math.Abs(e.Vel[0]) > 0.1 && e.OnGround {
		e.walkCycle += 0.05 + math.Abs(e.Vel[0])*0.00325
		e.Swing = math.Sin(e.walkCycle) * swingLimit
		return
	}
	e.Swing -= e.Swing * 0.1
	if math.Abs(e.Swing) < 0.5 {
		e.Swing, e.walkCycle = 0, 0
	}
}

func (e *Enemy) updateParts() {
	r := e.Rect
	e.Torso = physics.NewRect(r.X, r.Bottom()-enemyLegLen-enemyTorsoH, enemyWidth, enemyTorsoH)
	e.Head = physics.NewRect(
		e.Torso.CenterX()-enemyHeadSize/2+3*float64(e.Facing),
		e.Torso.Top()-enemyHeadSize,
		enemyHeadSize, enemyHeadSize)
}

// SwingProgress is 0 at the start of a swing and 1 at its end.
func (e *Enemy) SwingProgress() float64 {
	if e.State != Attack {
		return 0
	}
	return float64(AttackAnimTicks-e.AttackAnim) / AttackAnimTicks
}

// ClubAngle is the club's rotation in degrees (counter-clockwise).
func (e *Enemy) ClubAngle() float64 {
	return math.Sin(e.SwingProgress()*math.Pi) * -90 * float64(e.Facing)
}

// Club returns the world-space bounds of the club. While swinging it is
// the rotated club's bounding box centred on the leading shoulder.
func (e *Enemy) Club() physics.Rect {
	if e.State != Attack {
		r := physics.NewRect(0, 0, enemyClubW, enemyClubH)
		if e.Facing == 1 {
			r.X = e.Torso.Right()
		} else {
			r.X = e.Torso.Left() - enemyClubW
		}
		r.Y = e.Torso.CenterY() - enemyClubH/2 - 5
		return r
	}
	a := mgl64.DegToRad(e.ClubAngle())
	sin, cos := math.Abs(math.Sin(a)), math.Abs(math.Cos(a))
	w := enemyClubW*cos + enemyClubH*sin
	h := enemyClubW*sin + enemyClubH*cos
	pivot := mgl64.Vec2{e.Torso.Left(), e.Torso.Top()}
	if e.Facing == 1 {
		pivot[0] = e.Torso.Right()
	}
	r := physics.NewRect(0, 0, w, h)
	r.SetCenter(pivot)
	return r
}

// Strike reports whether the current swing connects with victim. A swing
// lands at most once.
func (e *Enemy) Strike(victim physics.Rect) bool {
	if e.State != Attack || e.swingHit {
		return false
	}
	if !e.Club().Overlaps(victim) {
		return false
	}
	e.swingHit = true
	return true
}

func hitsAny(r physics.Rect, rs []physics.Rect) bool {
	for _, o := range rs {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

func towards(target, from float64) int {
	if target > from {
		return 1
	}
	return -1
}
