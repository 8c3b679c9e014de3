package meta

import (
	"slices"
	"strings"
	"sync"
)

type registry struct {
	mu      sync.RWMutex
	entries []ScriptInventory
}

var inventory registry

// Submit adds a script to the process-wide registry. Only generated init
// functions call it. CollectSchema assumes the registry is complete and
// unchanging once main starts, so a later call makes two exports of the
// same process disagree. Entries cannot be removed or replaced.
func Submit(inv ScriptInventory) {
	inventory.submit(inv)
}

// Inventory returns every registered entry, ordered by symbol. Entries that
// share a symbol keep their submission order.
func Inventory() []ScriptInventory {
	return inventory.snapshot()
}

func (r *registry) submit(inv ScriptInventory) {
	if inv.Script == nil {
		panic("meta: Submit called with nil script descriptor")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, inv)
}

func (r *registry) snapshot() []ScriptInventory {
	r.mu.RLock()
	out := slices.Clone(r.entries)
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b ScriptInventory) int {
		return strings.Compare(a.Script.Symbol, b.Script.Symbol)
	})
	if out == nil {
		out = []ScriptInventory{}
	}
	return out
}
