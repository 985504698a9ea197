package item

// HotbarSize is the number of quick-select slots.
const HotbarSize = 5

// Inventory holds unbounded item counts plus a fixed hotbar. A kind
// appears in at most one hotbar slot.
type Inventory struct {
	counts   map[Kind]uint32
	hotbar   [HotbarSize]Kind
	selected int
}

func NewInventory() *Inventory {
	return &Inventory{counts: make(map[Kind]uint32, 8)}
}

// Count returns how many of k are held.
func (inv *Inventory) Count(k Kind) uint32 { return inv.counts[k] }

// Add stores n of k and, if k is not on the hotbar yet, assigns it to the
// first empty slot.
func (inv *Inventory) Add(k Kind, n uint32) {
	if k == None || n == 0 {
		return
	}
	inv.counts[k] += n
	if inv.slotOf(k) >= 0 {
		return
	}
	for i, s := range inv.hotbar {
		if s == None {
			inv.hotbar[i] = k
			return
		}
	}
}

// Take removes one k and reports whether one was held. Hotbar slots keep
// their kind at zero count.
func (inv *Inventory) Take(k Kind) bool {
	if inv.counts[k] == 0 {
		return false
	}
	inv.counts[k]--
	return true
}

// Counts returns a copy of the count table.
func (inv *Inventory) Counts() map[Kind]uint32 {
	out := make(map[Kind]uint32, len(inv.counts))
	for k, n := range inv.counts {
		if n > 0 {
			out[k] = n
		}
	}
	return out
}

func (inv *Inventory) Hotbar() [HotbarSize]Kind { return inv.hotbar }
func (inv *Inventory) Selected() int            { return inv.selected }

// SelectedKind returns the kind in the selected slot (None when empty).
func (inv *Inventory) SelectedKind() Kind { return inv.hotbar[inv.selected] }

// Select picks slot i; out-of-range indices are ignored.
func (inv *Inventory) Select(i int) {
	if i >= 0 && i < HotbarSize {
		inv.selected = i
	}
}

// Cycle moves the selection by delta, wrapping around.
func (inv *Inventory) Cycle(delta int) {
	inv.selected = ((inv.selected+delta)%HotbarSize + HotbarSize) % HotbarSize
}

func (inv *Inventory) slotOf(k Kind) int {
	for i, s := range inv.hotbar {
		if s == k {
			return i
		}
	}
	return -1
}
