package chunk

import (
	"math"
	"sort"

	"github.com/blockyworld/blocky/internal/tile"
	"go.uber.org/zap"
)

const (
	Size          = 32 // tiles per chunk column
	DefaultRadius = 2
)

// Index returns the chunk column containing pixel x.
func Index(px float64) int {
	return int(math.Floor(px / (Size * tile.Size)))
}

// Span returns the tile columns [x0, x1) covered by chunk c.
func Span(c int) (x0, x1 int) {
	return c * Size, (c + 1) * Size
}

// Streamer keeps the grid materialized only within Radius chunk columns
// of the player. Damage on unloaded tiles is lost.
type Streamer struct {
	raw    *tile.RawMap
	grid   *tile.Grid
	radius int
	loaded map[int]struct{}
	log    *zap.Logger

	// OnLoad, when set, is called after a chunk has been materialized.
	OnLoad func(c int)
	// OnUnload, when set, is called before a chunk's cells are cleared.
	OnUnload func(c int)
}

func NewStreamer(raw *tile.RawMap, grid *tile.Grid, radius int, log *zap.Logger) *Streamer {
	if radius < 0 {
		radius = DefaultRadius
	}
	return &Streamer{
		raw:    raw,
		grid:   grid,
		radius: radius,
		loaded: make(map[int]struct{}, 2*radius+1),
		log:    log,
	}
}

// Update recomputes the required chunk set around the player's centre x
// and applies the difference: unload first, then load. Both passes run in
// ascending chunk order so load callbacks fire deterministically.
func (s *Streamer) Update(playerCenterX float64) (loaded, unloaded int) {
	pc := Index(playerCenterX)
	lo, hi := pc-s.radius, pc+s.radius

	for _, c := range s.Loaded() {
		if c < lo || c > hi {
			s.Unload(c)
			unloaded++
		}
	}
	for c := lo; c <= hi; c++ {
		if !s.IsLoaded(c) {
			s.Load(c)
			loaded++
		}
	}
	if loaded > 0 || unloaded > 0 {
		s.log.Debug("chunks streamed",
			zap.Int("center", pc),
			zap.Int("loaded", loaded),
			zap.Int("unloaded", unloaded),
			zap.Int("tiles", s.grid.Count()))
	}
	return loaded, unloaded
}

// Load materializes chunk c from the raw map. Loading a loaded chunk is a
// no-op. Raw dirt with open air above becomes grass.
func (s *Streamer) Load(c int) {
	if _, ok := s.loaded[c]; ok {
		return
	}
	s.loaded[c] = struct{}{}

	x0, x1 := Span(c)
	x0, x1 = max(x0, 0), min(x1, s.raw.Width())
	for y := 0; y < s.raw.Height(); y++ {
		for x := x0; x < x1; x++ {
			t := s.raw.At(x, y)
			if t == tile.Air {
				continue
			}
			if t == tile.Dirt && s.raw.Exposed(x, y) {
				t = tile.Grass
			}
			s.grid.Put(tile.New(x, y, t))
		}
	}
	if s.OnLoad != nil && x0 < x1 {
		s.OnLoad(c)
	}
}

// Unload clears every cell of chunk c. Unloading an unloaded chunk is a
// no-op.
func (s *Streamer) Unload(c int) {
	if _, ok := s.loaded[c]; !ok {
		return
	}
	if s.OnUnload != nil {
		s.OnUnload(c)
	}
	delete(s.loaded, c)
	x0, x1 := Span(c)
	s.grid.ClearColumns(x0, x1)
}

// IsLoaded reports whether chunk c is materialized.
func (s *Streamer) IsLoaded(c int) bool {
	_, ok := s.loaded[c]
	return ok
}

// ColumnLive reports whether tile column x belongs to a loaded chunk.
func (s *Streamer) ColumnLive(x int) bool {
	return s.IsLoaded(int(math.Floor(float64(x) / Size)))
}

// Loaded returns the loaded chunk indices in ascending order.
func (s *Streamer) Loaded() []int {
	out := make([]int, 0, len(s.loaded))
	for c := range s.loaded {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

func (s *Streamer) Radius() int { return s.radius }
