package store

import (
	"bytes"
)

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// overlayIter merges a snapshot of the btree overlay with the iterator
// of the backing store, respecting overwrites and deletions recorded in
// the overlay.
type overlayIter struct {
	items     []keyer
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*overlayIter)(nil)

func newOverlayIter(items []keyer, parent Iterator, ascending bool) *overlayIter {
	iter := &overlayIter{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	// the cursor must never rest on a deleted entry
	if err := iter.skipAllDeleted(); err != nil {
		panic(err)
	}
	return iter
}

// Valid implements Iterator and returns true iff it can be read
func (i *overlayIter) Valid() bool {
	return i.ourValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *overlayIter) Next() error {
	// advance either us, parent, or both
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		fallthrough
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *overlayIter) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default: // none
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *overlayIter) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].(setItem).value
	case parent:
		return i.parent.Value()
	default: // none
		panic("Advanced past the end!")
	}
}

// Release releases the Iterator.
func (i *overlayIter) Release() {
	i.items = nil
	i.idx = 0
	if i.parent != nil {
		i.parent.Release()
	}
}

// skipAllDeleted loops and skips any number of deleted items
func (i *overlayIter) skipAllDeleted() error {
	for {
		skipped, err := i.skipDeleted()
		if err != nil {
			return err
		}
		if !skipped {
			return nil
		}
	}
}

// skipDeleted jumps over an element we can safely fast forward,
// returning true if skipped, so we can skip again
func (i *overlayIter) skipDeleted() (bool, error) {
	src := i.firstKey()
	if src == us || src == both {
		if _, ok := i.items[i.idx].(deletedItem); ok {
			i.idx++
			// if parent had the same key, advance parent as well
			if src == both {
				if err := i.parent.Next(); err != nil {
					return false, err
				}
			}
			return true, nil
		}
	}
	return false, nil
}

// firstKey selects the iterator holding the next key in iteration order
func (i *overlayIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parentValid() {
		if !i.ourValid() {
			return none
		}
		return us
	} else if !i.ourValid() {
		return parent
	}

	// both are valid... compare keys....
	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *overlayIter) ourValid() bool {
	return i.idx < len(i.items)
}

// makes sure the parent is non-nil before checking if it is valid
func (i *overlayIter) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
