package cached

import "github.com/hupe1980/entitycache/core"

// Iterator is a cursor over a SortedArrayIterable in forward or reverse
// order. It is not safe for concurrent use; create one per reader.
//
//	it := iterable.Iterator()
//	it.Skip(offset)
//	for n := 0; n < limit && it.Next(); n++ {
//	    use(it.Value())
//	}
type Iterator struct {
	typeID   int32
	localIDs []int64
	pos      int // next position to yield
	end      int // one past the last position, in step direction
	step     int
	cur      core.EntityID
}

func newIterator(typeID int32, localIDs []int64, count int, reverse bool) *Iterator {
	it := &Iterator{
		typeID:   typeID,
		localIDs: localIDs,
		step:     1,
		end:      count,
	}
	if reverse {
		it.pos = count - 1
		it.end = -1
		it.step = -1
	}
	return it
}

// Next advances the cursor and reports whether a value is available.
func (it *Iterator) Next() bool {
	if it.pos == it.end {
		return false
	}
	if it.typeID == core.NullTypeID {
		it.cur = core.NullID
	} else {
		it.cur = core.NewEntityID(it.typeID, it.localIDs[it.pos])
	}
	it.pos += it.step
	return true
}

// Value returns the id at the cursor. It is only valid after Next returned true.
func (it *Iterator) Value() core.EntityID {
	return it.cur
}

// Skip advances past up to n ids without yielding them and returns the
// number actually skipped.
func (it *Iterator) Skip(n int) int {
	if n <= 0 {
		return 0
	}
	n = min(n, it.Remaining())
	it.pos += n * it.step
	return n
}

// Remaining returns the number of ids not yet yielded.
func (it *Iterator) Remaining() int {
	return (it.end - it.pos) * it.step
}
