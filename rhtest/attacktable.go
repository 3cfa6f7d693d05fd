package rhtest

import (
	"fmt"
	"strings"
)

// AttackEntry is one target of a campaign: the address and the number of
// accesses made there before moving to the next entry.
type AttackEntry struct {
	Order   int
	Address uint64
	Count   uint32
}

// CapacityError reports an add at an order other than the next free one.
type CapacityError struct {
	Order    int
	Next     int
	Capacity int
}

func (e *CapacityError) Error() string {
	if e.Next >= e.Capacity {
		return fmt.Sprintf(
			"order %d refused: attack table is full (capacity %d)",
			e.Order, e.Capacity)
	}

	return fmt.Sprintf(
		"order %d refused: next free order value is %d", e.Order, e.Next)
}

// AttackTable is the ordered list of attack entries. Entries are appended at
// the tail and removed from the tail only.
type AttackTable struct {
	entries [Capacity]AttackEntry
	count   int
}

// Len returns the number of entries.
func (t *AttackTable) Len() int {
	return t.count
}

// Add appends an entry. The order must equal the current length.
func (t *AttackTable) Add(order int, address uint64, count uint32) error {
	if order != t.count || t.count >= Capacity {
		return &CapacityError{Order: order, Next: t.count, Capacity: Capacity}
	}

	t.entries[t.count] = AttackEntry{
		Order:   order,
		Address: address,
		Count:   count,
	}
	t.count++

	return nil
}

// Pop removes the last entry. It returns false if the table is empty.
func (t *AttackTable) Pop() (AttackEntry, bool) {
	if t.count == 0 {
		return AttackEntry{}, false
	}

	t.count--
	e := t.entries[t.count]
	t.entries[t.count] = AttackEntry{}

	return e, true
}

// Entry returns the entry at order i, if it is occupied.
func (t *AttackTable) Entry(i int) (AttackEntry, bool) {
	if i < 0 || i >= t.count {
		return AttackEntry{}, false
	}

	return t.entries[i], true
}

// Entries returns a copy of the occupied entries in order.
func (t *AttackTable) Entries() []AttackEntry {
	entries := make([]AttackEntry, t.count)
	copy(entries, t.entries[:t.count])

	return entries
}

// Description summarizes the occupancy of the table.
type Description struct {
	Occupied []int
	Next     int
	Capacity int
}

// Full reports whether no more entries can be added.
func (d Description) Full() bool {
	return d.Next >= d.Capacity
}

func (d Description) String() string {
	b := &strings.Builder{}

	fmt.Fprintf(b, "Occupied order values (%d of %d):", len(d.Occupied), d.Capacity)
	if len(d.Occupied) == 0 {
		b.WriteString(" none")
	}

	for _, i := range d.Occupied {
		fmt.Fprintf(b, " %d", i)
	}

	if d.Full() {
		b.WriteString("\nTable is full")
	} else {
		fmt.Fprintf(b, "\nNext free order value: %d", d.Next)
	}

	return b.String()
}

// Describe lists the occupied indices and the capacity.
func (t *AttackTable) Describe() Description {
	occupied := make([]int, t.count)
	for i := range occupied {
		occupied[i] = i
	}

	return Description{
		Occupied: occupied,
		Next:     t.count,
		Capacity: Capacity,
	}
}
