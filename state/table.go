package state

// Table is the shared storage shape spec.md §3 mandates for every entity
// collection: a contiguous vector of records plus an ID -> index map,
// deleting by swap-remove. It generalizes the teacher repo's per-package,
// hand-written "vector + lookup map" pairs (e.g. ships/stack.go's
// by-squadron/by-fleet bookkeeping) into one reusable primitive; callers
// still only reach it through State's Get/Mutate/Query methods, never the
// raw table.
type Table[ID comparable, T any] struct {
	records []T
	index   map[ID]int
	idOf    func(T) ID
}

// NewTable returns an empty Table. idOf must return the ID field of a
// record; it is used to keep the index map coherent across swap-removes.
func NewTable[ID comparable, T any](idOf func(T) ID) *Table[ID, T] {
	return &Table[ID, T]{index: make(map[ID]int), idOf: idOf}
}

// Get returns the record for id and whether it exists.
func (t *Table[ID, T]) Get(id ID) (T, bool) {
	i, ok := t.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.records[i], true
}

// MustGet returns the record for id, panicking if absent. Used internally
// once an index lookup has already proven the ID exists — a miss at this
// point is index drift (spec.md §4.1 failure mode).
func (t *Table[ID, T]) MustGet(id ID) T {
	v, ok := t.Get(id)
	if !ok {
		panic("state: index drift — ID present in secondary index but not in table")
	}
	return v
}

// Has reports whether id exists in the table.
func (t *Table[ID, T]) Has(id ID) bool {
	_, ok := t.index[id]
	return ok
}

// Insert adds a new record. It panics if the ID already exists — callers
// mint IDs from a Counter and never reuse one, so a collision is an
// invariant violation.
func (t *Table[ID, T]) Insert(rec T) {
	id := t.idOf(rec)
	if _, exists := t.index[id]; exists {
		panic("state: duplicate ID inserted into table")
	}
	t.index[id] = len(t.records)
	t.records = append(t.records, rec)
}

// Update replaces the record stored for id. Panics if id is absent.
func (t *Table[ID, T]) Update(id ID, rec T) {
	i, ok := t.index[id]
	if !ok {
		panic("state: update of missing ID")
	}
	t.records[i] = rec
}

// Delete removes id via swap-remove and reports whether it existed.
func (t *Table[ID, T]) Delete(id ID) bool {
	i, ok := t.index[id]
	if !ok {
		return false
	}
	last := len(t.records) - 1
	if i != last {
		t.records[i] = t.records[last]
		t.index[t.idOf(t.records[i])] = i
	}
	t.records = t.records[:last]
	delete(t.index, id)
	return true
}

// Len reports the number of records currently stored.
func (t *Table[ID, T]) Len() int { return len(t.records) }

// All returns a copy of every record, in storage order (not a stable
// semantic order — callers that need determinism must sort by ID).
func (t *Table[ID, T]) All() []T {
	out := make([]T, len(t.records))
	copy(out, t.records)
	return out
}

// Range calls fn for every record until fn returns false.
func (t *Table[ID, T]) Range(fn func(T) bool) {
	for _, r := range t.records {
		if !fn(r) {
			return
		}
	}
}
