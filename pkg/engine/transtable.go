package engine

import (
	"sync/atomic"
	"unsafe"
)

// The table stores the best turn as its index in the deterministic
// generation order for the position, so an entry fits in 16 bytes without
// encoding coordinates. Readers and writers synchronize per entry through a
// CAS gate, which keeps the table safe under lazy SMP without a global lock.

const (
	boundLower = 1 << iota
	boundUpper
	boundExact = boundLower | boundUpper
)

type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint32
	mask      uint32
}

type transEntry struct {
	gate      int32
	key32     uint32
	indexDate uint32
	score     int16
	depth     int8
	bound     uint8
}

const (
	indexBits = 21
	indexMask = 1<<indexBits - 1
	dateMask  = 0x7ff
)

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / int(unsafe.Sizeof(transEntry{})))
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint32(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

func (tt *transTable) IncDate() {
	tt.date = (tt.date + 1) & dateMask
}

// turnIndex is stored offset by one so a zeroed entry means "no turn".
func packIndexDate(turnIndex int, date uint32) uint32 {
	var index uint32
	if turnIndex >= 0 && turnIndex < indexMask {
		index = uint32(turnIndex + 1)
	}
	return index | date<<indexBits
}

func unpackIndex(indexDate uint32) int {
	return int(indexDate&indexMask) - 1
}

func (tt *transTable) Read(key uint64) (depth, score, bound, turnIndex int, ok bool) {
	turnIndex = -1
	var entry = &tt.entries[uint32(key)&tt.mask]
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	if entry.key32 == uint32(key>>32) {
		entry.indexDate = packIndexDate(unpackIndex(entry.indexDate), tt.date)
		depth = int(entry.depth)
		score = int(entry.score)
		bound = int(entry.bound)
		turnIndex = unpackIndex(entry.indexDate)
		ok = true
	}
	atomic.StoreInt32(&entry.gate, 0)
	return
}

func (tt *transTable) Update(key uint64, depth, score, bound, turnIndex int) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	var replace bool
	if entry.key32 == uint32(key>>32) {
		replace = depth >= int(entry.depth)-3 || bound == boundExact
		if turnIndex < 0 {
			turnIndex = unpackIndex(entry.indexDate)
		}
	} else {
		replace = entry.bound == 0 ||
			entry.indexDate>>indexBits != tt.date ||
			depth >= int(entry.depth)
	}
	if replace {
		entry.key32 = uint32(key >> 32)
		entry.indexDate = packIndexDate(turnIndex, tt.date)
		entry.score = int16(score)
		entry.depth = int8(depth)
		entry.bound = uint8(bound)
	}
	atomic.StoreInt32(&entry.gate, 0)
}
