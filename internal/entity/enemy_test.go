package entity

import (
	"math/rand"
	"testing"

	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/tile"
)

const floorRow = 8

// flatWorld returns a 20x10 grid with a stone floor on row 8 and the
// matching collider rectangles.
func flatWorld() (*tile.Grid, []physics.Rect) {
	g := tile.NewGrid(20, 10)
	var rects []physics.Rect
	for x := 0; x < 20; x++ {
		g.Put(tile.New(x, floorRow, tile.Stone))
		rects = append(rects, physics.NewRect(float64(x*tile.Size), floorRow*tile.Size, tile.Size, tile.Size))
	}
	return g, rects
}

// standingPlayer places a player on the floor with its centre at cx.
func standingPlayer(cx float64) *Player {
	p := NewPlayer(cx-playerWidth/2.0, floorRow*tile.Size-playerHeight)
	p.OnGround = true
	p.UpdateParts()
	return p
}

func TestEnemyPatrolToChase(t *testing.T) {
	g, rects := flatWorld()
	rng := rand.New(rand.NewSource(1))

	e := NewEnemy(400, floorRow*tile.Size)
	p := standingPlayer(300) // 100px to the left, enemy faces left

	e.Update(g, rects, p.Target(), rng)
	if e.State != Chase {
		t.Fatalf("state = %v, want chase", e.State)
	}
}

func TestEnemyIgnoresPlayerBehind(t *testing.T) {
	g, rects := flatWorld()
	rng := rand.New(rand.NewSource(1))

	e := NewEnemy(400, floorRow*tile.Size)
	p := standingPlayer(500) // behind the left-facing enemy

	e.Update(g, rects, p.Target(), rng)
	if e.State != Patrol {
		t.Fatalf("state = %v, want patrol", e.State)
	}
}

func TestEnemyNoSightThroughWall(t *testing.T) {
	g, rects := flatWorld()
	for y := 0; y < floorRow; y++ {
		g.Put(tile.New(8, y, tile.Stone))
	}
	rng := rand.New(rand.NewSource(1))

	e := NewEnemy(420, floorRow*tile.Size)
	p := standingPlayer(250)

	e.Update(g, rects, p.Target(), rng)
	if e.CanSee || e.State != Patrol {
		t.Fatalf("canSee=%v state=%v, want hidden patrol", e.CanSee, e.State)
	}
}

func TestEnemyAttackLastsAnimation(t *testing.T) {
	g, rects := flatWorld()
	rng := rand.New(rand.NewSource(1))

	e := NewEnemy(400, floorRow*tile.Size)
	e.State = Chase
	target := standingPlayer(370).Target()

	e.Update(g, rects, target, rng)
	if e.State != Attack {
		t.Fatalf("state = %v, want attack", e.State)
	}

	attackTicks := 1
	for e.State == Attack {
		e.Update(g, rects, target, rng)
		if e.State == Attack {
			attackTicks++
		}
		if attackTicks > 100 {
			t.Fatal("attack never ended")
		}
	}
	if attackTicks != AttackAnimTicks {
		t.Errorf("attack lasted %d ticks, want %d", attackTicks, AttackAnimTicks)
	}
	if e.State != Chase || e.AttackTimer != AttackCooldown {
		t.Errorf("after attack: state=%v attackTimer=%d, want chase/%d", e.State, e.AttackTimer, AttackCooldown)
	}
}

func TestEnemyStrikesOncePerSwing(t *testing.T) {
	g, rects := flatWorld()
	rng := rand.New(rand.NewSource(1))

	e := NewEnemy(400, floorRow*tile.Size)
	e.State = Chase
	p := standingPlayer(370)
	target := p.Target()

	hits := 0
	for i := 0; i < AttackAnimTicks+5; i++ {
		e.Update(g, rects, target, rng)
		if e.Strike(p.Rect) {
			hits++
		}
	}
	if hits != 1 {
		t.Errorf("swing hit %d times, want 1", hits)
	}
}

func TestEnemyChaseToSearch(t *testing.T) {
	g, rects := flatWorld()
	rng := rand.New(rand.NewSource(1))

	e := NewEnemy(700, floorRow*tile.Size)
	e.State = Chase
	p := standingPlayer(700 - DetectionRadius*ChaseGiveUpFactor - 20)

	e.Update(g, rects, p.Target(), rng)
	if e.State != Search || e.SearchTimer != SearchTicks {
		t.Fatalf("state=%v searchTimer=%d, want search/%d", e.State, e.SearchTimer, SearchTicks)
	}
}

func TestEnemySearchExpires(t *testing.T) {
	g, rects := flatWorld()
	for y := 0; y < floorRow; y++ {
		g.Put(tile.New(5, y, tile.Stone))
	}
	rng := rand.New(rand.NewSource(1))

	e := NewEnemy(600, floorRow*tile.Size)
	e.State = Search
	e.SearchTimer = 3
	p := standingPlayer(100) // hidden behind the wall

	for i := 0; i < 3; i++ {
		e.Update(g, rects, p.Target(), rng)
	}
	if e.State != Patrol {
		t.Fatalf("state = %v, want patrol after search timeout", e.State)
	}
}
