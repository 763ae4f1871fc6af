package alloc

// freeList is the first-fit registry: a LIFO list of free blocks whose link
// words live in the block headers themselves. Insert is O(1); Take is a
// linear scan that returns the first block large enough, however oversized.
type freeList struct {
	a     arena
	head  Ptr
	count int
	stats RegistryStats
}

func newFreeList(a arena) *freeList {
	return &freeList{a: a}
}

// Insert pushes b on the head of the list. The list is unbounded.
func (f *freeList) Insert(b Block) error {
	f.a.setLink(b.Off, f.head)
	f.head = b.Ptr()
	f.count++
	f.stats.Inserts++
	return nil
}

// Take unlinks the first block with Size >= need.
func (f *freeList) Take(need uint64) (Block, bool) {
	var prev Ptr
	for cur := f.head; cur != Nil; cur = f.a.link(cur.block()) {
		f.stats.Scanned++
		off := cur.block()
		size, _ := f.a.header(off)
		if size < need {
			prev = cur
			continue
		}
		next := f.a.link(off)
		if prev == Nil {
			f.head = next
		} else {
			f.a.setLink(prev.block(), next)
		}
		f.a.setLink(off, Nil)
		f.count--
		f.stats.Takes++
		return Block{Off: off, Size: size}, true
	}
	f.stats.Misses++
	return Block{}, false
}

// Len implements Registry.
func (f *freeList) Len() int { return f.count }

// Each walks the list from the most recently freed block.
func (f *freeList) Each(fn func(Block) bool) {
	for cur := f.head; cur != Nil; cur = f.a.link(cur.block()) {
		size, _ := f.a.header(cur.block())
		if !fn(Block{Off: cur.block(), Size: size}) {
			return
		}
	}
}

// Stats implements Registry.
func (f *freeList) Stats() RegistryStats { return f.stats }

// Compile-time interface check
var _ Registry = (*freeList)(nil)
