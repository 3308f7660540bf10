package sync

import (
	"encoding/binary"
	"strconv"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/spaolacci/murmur3"
)

// ring is a consistent hash ring over the shard indices [0, shards)
type ring struct {
	hashRing *treemap.Map

	// Cached since treemap.Map.Min() is O(log n)
	minShard int
}

// newRing returns a ring where every shard has replicationFactor points
func newRing(shards, replicationFactor uint) *ring {
	hashRing := treemap.NewWith(utils.Int64Comparator)

	point := make([]byte, 12)
	for shard := 0; shard < int(shards); shard++ {
		shardHash, _ := murmur3.Sum128([]byte("shard" + strconv.Itoa(shard)))
		binary.LittleEndian.PutUint64(point, shardHash)

		for i := uint32(0); i < uint32(replicationFactor); i++ {
			binary.LittleEndian.PutUint32(point[8:], i)
			hash, _ := murmur3.Sum128(point)
			hashRing.Put(int64(hash), shard)
		}
	}

	r := &ring{hashRing: hashRing}
	if _, minShard := hashRing.Min(); minShard != nil {
		r.minShard = minShard.(int)
	}
	return r
}

// shard consistently hashes key onto a shard index
func (r *ring) shard(key []byte) int {
	raw, _ := murmur3.Sum128(key)
	if _, shard := r.hashRing.Ceiling(int64(raw)); shard != nil {
		return shard.(int)
	}
	return r.minShard
}
