package leadsheet

// itemArray keeps items sorted by position. At equal position bar single
// items (sections) come first; items of the same kind keep their insertion
// order. It knows nothing about document invariants.
type itemArray struct {
	items []Item
}

func (a *itemArray) len() int { return len(a.items) }

func (a *itemArray) at(i int) Item { return a.items[i] }

// insertOrdered inserts it before the first item that sorts strictly after
// it and returns the insertion index.
func (a *itemArray) insertOrdered(it Item) int {
	index := len(a.items)
	for i, cur := range a.items {
		if sortsBefore(it, cur) {
			index = i
			break
		}
	}
	a.insertAt(it, index)
	return index
}

// sortsBefore reports whether it must be placed before cur.
func sortsBefore(it, cur Item) bool {
	switch c := it.Position().Compare(cur.Position()); {
	case c < 0:
		return true
	case c > 0:
		return false
	default:
		return it.IsBarSingle() && !cur.IsBarSingle()
	}
}

// insertAt puts it at index i. Used to restore an exact former order.
func (a *itemArray) insertAt(it Item, i int) {
	a.items = append(a.items, nil)
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = it
}

// indexOf returns the index of it (by identity), or -1.
func (a *itemArray) indexOf(it Item) int {
	for i, cur := range a.items {
		if cur == it {
			return i
		}
	}
	return -1
}

func (a *itemArray) contains(it Item) bool {
	return a.indexOf(it) >= 0
}

// remove deletes it (by identity) and returns its former index, or -1.
func (a *itemArray) remove(it Item) int {
	i := a.indexOf(it)
	if i < 0 {
		return -1
	}
	copy(a.items[i:], a.items[i+1:])
	a.items[len(a.items)-1] = nil
	a.items = a.items[:len(a.items)-1]
	return i
}

// indexOfItemAtOrAfterBar returns the first index whose item's bar is >= bar,
// or -1.
func (a *itemArray) indexOfItemAtOrAfterBar(bar int) int {
	for i, cur := range a.items {
		if cur.Position().Bar >= bar {
			return i
		}
	}
	return -1
}

// slice returns an independent copy of items[from:to].
func (a *itemArray) slice(from, to int) []Item {
	out := make([]Item, to-from)
	copy(out, a.items[from:to])
	return out
}

// all returns an independent copy of every item.
func (a *itemArray) all() []Item {
	return a.slice(0, len(a.items))
}
