package sets

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring"
	"github.com/dgraph-io/badger/v3"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/fine-structures/dodeca-go/dodeca"
)

// New returns an empty IntSet using the given backend.
func New(kind dodeca.SetKind) dodeca.IntSet {
	switch kind {
	case dodeca.SetRoaring:
		return &roaringSet{
			bm: roaring.New(),
		}
	case dodeca.SetTree:
		return &treeSet{
			tree: treeset.NewWith(utils.UInt32Comparator),
		}
	case dodeca.SetLSM:
		return &lsmSet{}
	}
	panic(fmt.Sprintf("unknown set kind %v", kind))
}

// AppendTo appends the items of set to out in ascending order.
func AppendTo(set dodeca.IntSet, out []dodeca.EdgeSubset) []dodeca.EdgeSubset {
	set.Each(func(x dodeca.EdgeSubset) bool {
		out = append(out, x)
		return true
	})
	return out
}

type roaringSet struct {
	bm *roaring.Bitmap
}

func (set *roaringSet) TryAdd(x dodeca.EdgeSubset) bool {
	return set.bm.CheckedAdd(uint32(x))
}

func (set *roaringSet) Contains(x dodeca.EdgeSubset) bool {
	return set.bm.Contains(uint32(x))
}

func (set *roaringSet) Len() int64 {
	return int64(set.bm.GetCardinality())
}

func (set *roaringSet) Each(fn func(x dodeca.EdgeSubset) bool) {
	set.bm.Iterate(func(x uint32) bool {
		return fn(dodeca.EdgeSubset(x))
	})
}

func (set *roaringSet) Clear() {
	set.bm.Clear()
}

func (set *roaringSet) Close() {
	set.bm = nil
}

type treeSet struct {
	tree *treeset.Set
}

func (set *treeSet) TryAdd(x dodeca.EdgeSubset) bool {
	if set.tree.Contains(uint32(x)) {
		return false
	}
	set.tree.Add(uint32(x))
	return true
}

func (set *treeSet) Contains(x dodeca.EdgeSubset) bool {
	return set.tree.Contains(uint32(x))
}

func (set *treeSet) Len() int64 {
	return int64(set.tree.Size())
}

func (set *treeSet) Each(fn func(x dodeca.EdgeSubset) bool) {
	itr := set.tree.Iterator()
	for itr.Next() {
		if !fn(dodeca.EdgeSubset(itr.Value().(uint32))) {
			break
		}
	}
}

func (set *treeSet) Clear() {
	set.tree.Clear()
}

func (set *treeSet) Close() {
	set.tree = nil
}

// lsmSet keeps items as big-endian keys in an in-memory badger db so that key order is numeric order.
type lsmSet struct {
	db    *badger.DB
	count int64
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true).WithMemTableSize(16 << 20)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) TryAdd(x dodeca.EdgeSubset) bool {
	set.autoOpen()

	var key [4]byte
	binary.BigEndian.PutUint32(key[:], uint32(x))

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key[:])
		if err == nil {
			return nil // already present
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key[:], nil)
	})
	if err != nil {
		panic(err)
	}

	if added {
		set.count++
	}
	return added
}

func (set *lsmSet) Contains(x dodeca.EdgeSubset) bool {
	if set.db == nil {
		return false
	}

	var key [4]byte
	binary.BigEndian.PutUint32(key[:], uint32(x))

	found := false
	err := set.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key[:])
		if err == nil {
			found = true
		} else if err == badger.ErrKeyNotFound {
			err = nil
		}
		return err
	})
	if err != nil {
		panic(err)
	}
	return found
}

func (set *lsmSet) Len() int64 {
	return set.count
}

func (set *lsmSet) Each(fn func(x dodeca.EdgeSubset) bool) {
	if set.db == nil {
		return
	}

	txn := set.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		key := it.Item().Key()
		if !fn(dodeca.EdgeSubset(binary.BigEndian.Uint32(key))) {
			break
		}
	}
}

// Clear drops the backing db; the next TryAdd opens a fresh one.
func (set *lsmSet) Clear() {
	set.Close()
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
	set.count = 0
}
