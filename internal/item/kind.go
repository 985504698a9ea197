package item

import (
	"fmt"

	"github.com/blockyworld/blocky/internal/tile"
)

// Kind identifies an inventory item. None marks an empty hotbar slot.
type Kind uint8

const (
	None Kind = iota
	Dirt
	Stone
	Wood
	Leaf
	Grass // never dropped by breaking, places as dirt
)

var kindNames = [...]string{"", "dirt", "stone", "wood", "leaf", "grass"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves an item name as used in scripts and data files.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if i > 0 && n == s {
			return Kind(i), true
		}
	}
	return None, false
}

// DropFor returns the item produced by breaking a tile of type t.
func DropFor(t tile.Type) Kind {
	switch t {
	case tile.Dirt, tile.Grass:
		return Dirt
	case tile.Stone:
		return Stone
	case tile.Wood:
		return Wood
	case tile.Leaf:
		return Leaf
	}
	return None
}

// Places returns the tile type created when k is placed, and false for
// kinds that cannot be placed.
func (k Kind) Places() (tile.Type, bool) {
	switch k {
	case Dirt, Grass:
		return tile.Dirt, true
	case Stone:
		return tile.Stone, true
	case Wood:
		return tile.Wood, true
	case Leaf:
		return tile.Leaf, true
	}
	return tile.Air, false
}
