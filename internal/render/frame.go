package render

import (
	"github.com/blockyworld/blocky/internal/core/ecs"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/rules"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/blockyworld/blocky/internal/world"
	"github.com/go-gl/mathgl/mgl64"
)

const grassCapHeight = tile.Size / 5

// Options toggles optional overlays.
type Options struct {
	ShowReach bool
}

// Frame builds the draw list for one frame, back to front: terrain, break
// and placement overlays, items, enemies, then the player or its debris.
func Frame(ws *world.State, camera mgl64.Vec2, opts Options) []Command {
	st := ws.Ctx.Settings
	f := frame{camera: camera, out: make([]Command, 0, 256)}

	ws.Grid.Each(tile.ViewWindow(camera[0], camera[1], st.ViewW, st.ViewH), f.tile)
	f.breaking(ws)
	if ws.Phase == world.Playing {
		f.preview(ws)
	}

	ws.Items.Each(func(_ ecs.EntityID, d *entity.ItemDrop) {
		f.add(Command{Kind: KindItem, Rect: f.screen(d.Rect), Item: d.Kind, Angle: d.Angle})
	})
	ws.Enemies.Each(func(_ ecs.EntityID, e *entity.Enemy) { f.enemy(e) })

	switch ws.Phase {
	case world.Playing:
		f.player(ws.Player)
		if opts.ShowReach {
			f.reach(ws.Actor())
		}
	case world.Dying:
		for _, d := range ws.Debris {
			f.add(Command{Kind: KindDebris, Rect: f.screen(d.Rect), Part: d.Part})
		}
	}
	return f.out
}

type frame struct {
	camera mgl64.Vec2
	out    []Command
}

func (f *frame) add(c Command) { f.out = append(f.out, c) }

func (f *frame) screen(r physics.Rect) physics.Rect {
	return r.Move(-f.camera[0], -f.camera[1])
}

func (f *frame) cellRect(c tile.Cell) physics.Rect {
	return f.screen(physics.NewRect(float64(c.X*tile.Size), float64(c.Y*tile.Size), tile.Size, tile.Size))
}

func (f *frame) tile(t *tile.Tile) {
	r := f.screen(world.TileRect(t))
	f.add(Command{Kind: KindTile, Rect: r, Tile: t.Type})
	if t.Type == tile.Grass {
		f.add(Command{Kind: KindGrassCap, Rect: physics.NewRect(r.X, r.Y, r.W, grassCapHeight), Tile: t.Type})
	}
	f.cracks(r, t.VisibleCracks())
}

func (f *frame) cracks(r physics.Rect, segs []tile.Segment) {
	for _, s := range segs {
		f.add(Command{Kind: KindCrack, X1: r.X + s.X1, Y1: r.Y + s.Y1, X2: r.X + s.X2, Y2: r.Y + s.Y2})
	}
}

// breaking draws the progress bar and the growing crack of a held break.
func (f *frame) breaking(ws *world.State) {
	c, progress, ok := ws.Breaker.Progress()
	if !ok || ws.Grid.AtCell(c) == nil {
		return
	}
	r := f.cellRect(c)
	segs := tile.CrackPattern(c)
	f.cracks(r, segs[:int(float64(len(segs))*progress)])
	f.add(Command{Kind: KindBreakBar, Rect: r, Progress: progress})
}

// preview outlines the cursor cell when the selected item can be placed
// somewhere; Valid carries the verdict for this cell.
func (f *frame) preview(ws *world.State) {
	k := ws.Player.Inventory.SelectedKind()
	if _, ok := k.Places(); !ok {
		return
	}
	c := ws.Input.Cursor
	v := rules.CanPlace(ws.Grid, ws.Actor(), c, ws.Player.Inventory.Count(k))
	f.add(Command{Kind: KindPreview, Rect: f.cellRect(c), Item: k, Valid: v.OK()})
}

func (f *frame) player(p *entity.Player) {
	flash := p.Invincible > 0 && (p.Invincible/6)%2 == 1
	limbs := p.Limbs()
	parts := [...]struct {
		part entity.Part
		r    physics.Rect
	}{
		{entity.PartLeftLeg, limbs[2]},
		{entity.PartRightLeg, limbs[3]},
		{entity.PartTorso, p.Torso},
		{entity.PartLeftArm, limbs[0]},
		{entity.PartRightArm, limbs[1]},
		{entity.PartHead, p.Head},
	}
	for _, pt := range parts {
		f.add(Command{Kind: KindPlayer, Rect: f.screen(pt.r), Part: pt.part, Angle: p.Swing, Flash: flash})
	}
}

func (f *frame) enemy(e *entity.Enemy) {
	legH := e.Rect.Bottom() - e.Torso.Bottom()
	legW := e.Torso.W / 3
	left := physics.NewRect(e.Torso.Left(), e.Torso.Bottom(), legW, legH)
	right := physics.NewRect(e.Torso.Right()-legW, e.Torso.Bottom(), legW, legH)

	f.add(Command{Kind: KindEnemy, Rect: f.screen(left), Part: entity.PartLeftLeg, Angle: e.Swing})
	f.add(Command{Kind: KindEnemy, Rect: f.screen(right), Part: entity.PartRightLeg, Angle: -e.Swing})
	f.add(Command{Kind: KindEnemy, Rect: f.screen(e.Torso), Part: entity.PartTorso})
	f.add(Command{Kind: KindEnemy, Rect: f.screen(e.Head), Part: entity.PartHead})
	f.add(Command{Kind: KindClub, Rect: f.screen(e.Club()), Angle: e.ClubAngle()})

	var glyph rune
	switch e.State {
	case entity.Chase, entity.Attack:
		glyph = '!'
	case entity.Search:
		glyph = '?'
	default:
		return
	}
	above := physics.NewRect(e.Head.X, e.Head.Y-e.Head.H, e.Head.W, e.Head.H)
	f.add(Command{Kind: KindAlert, Rect: f.screen(above), Glyph: glyph})
}

func (f *frame) reach(a rules.Actor) {
	lo := tile.CellAt(a.Body.Left(), a.Body.Top())
	hi := tile.CellAt(a.Body.Right(), a.Body.Bottom())
	x0, y0 := lo.X-a.Reach.Horizontal, lo.Y-a.Reach.Up
	x1, y1 := hi.X+a.Reach.Horizontal+1, hi.Y+a.Reach.Down+1
	r := physics.NewRect(float64(x0*tile.Size), float64(y0*tile.Size),
		float64((x1-x0)*tile.Size), float64((y1-y0)*tile.Size))
	f.add(Command{Kind: KindReach, Rect: f.screen(r)})
}
