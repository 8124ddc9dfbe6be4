package dict

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dolthub/swiss"
)

const noID = int32(-1)

// Dict interns strings into dense ids assigned in first-seen order.
//
// Keys are indexed by their xxhash digest. Each digest points at the most
// recently interned id with that digest, and next chains the older ones, so
// collisions cost a string compare rather than a wrong id.
type Dict struct {
	heads *swiss.Map[uint64, int32]
	next  []int32
	keys  []string
}

func New(capacity int) *Dict {
	return &Dict{
		heads: swiss.NewMap[uint64, int32](uint32(max(capacity, 1))),
		next:  make([]int32, 0, capacity),
		keys:  make([]string, 0, capacity),
	}
}

// InternBytes is Intern for a byte key. The key is only copied into a
// string when it has not been seen before.
func (d *Dict) InternBytes(key []byte) int32 {
	h := xxhash.Sum64(key)
	head := d.head(h)
	for id := head; id != noID; id = d.next[id] {
		if d.keys[id] == string(key) {
			return id
		}
	}
	return d.insert(h, head, string(key))
}

func (d *Dict) Intern(key string) int32 {
	h := xxhash.Sum64String(key)
	head := d.head(h)
	if id := d.find(head, key); id != noID {
		return id
	}
	return d.insert(h, head, key)
}

func (d *Dict) head(h uint64) int32 {
	if id, ok := d.heads.Get(h); ok {
		return id
	}
	return noID
}

func (d *Dict) find(head int32, key string) int32 {
	for id := head; id != noID; id = d.next[id] {
		if d.keys[id] == key {
			return id
		}
	}
	return noID
}

func (d *Dict) insert(h uint64, head int32, key string) int32 {
	id := int32(len(d.keys))
	d.keys = append(d.keys, key)
	d.next = append(d.next, head)
	d.heads.Put(h, id)
	return id
}

func (d *Dict) Key(id int32) string {
	return d.keys[id]
}

func (d *Dict) Len() int {
	return len(d.keys)
}

// Each visits every entry in id order.
func (d *Dict) Each(f func(key string, id int32)) {
	for id, key := range d.keys {
		f(key, int32(id))
	}
}
