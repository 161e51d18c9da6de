package stack

import (
	"sync"

	"github.com/ehrlich-b/go-green/internal/constants"
)

// Sizes outside these buckets are mmap'd and munmap'd directly on every
// Spawn/exit rather than pooled.
var bucketSizes = [...]int{
	constants.PoolBucket256K,
	constants.PoolBucket1M,
	constants.PoolBucket2M,
}

var pools = map[int]*sync.Pool{
	constants.PoolBucket256K: {New: func() any { return Allocate(constants.PoolBucket256K) }},
	constants.PoolBucket1M:   {New: func() any { return Allocate(constants.PoolBucket1M) }},
	constants.PoolBucket2M:   {New: func() any { return Allocate(constants.PoolBucket2M) }},
}

func bucketFor(size int) int {
	for _, b := range bucketSizes {
		if size == b {
			return b
		}
	}
	return 0
}

// Get returns a Region of exactly size usable bytes, reusing a pooled
// mapping when size matches one of the pool's buckets and allocating a
// fresh one otherwise.
func Get(size int) *Region {
	if b := bucketFor(size); b != 0 {
		return pools[b].Get().(*Region)
	}
	return Allocate(size)
}

// Put returns a Region to its bucket's pool for reuse, or releases it
// immediately if its size does not match a bucket. The region must not
// be used again by the caller after Put.
func Put(r *Region) {
	if b := bucketFor(r.Size()); b != 0 {
		r.reguard()
		pools[b].Put(r)
		return
	}
	r.Release()
}
