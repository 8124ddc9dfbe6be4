package dict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestIntern(t *testing.T) {
	d := New(4)

	var tests = []struct {
		key string
		id  int32
	}{
		{"Cairo", 0},
		{"Lagos", 1},
		{"Cairo", 0},
		{"", 2},
		{"Lagos", 1},
		{"Accra", 3},
		{"", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.id, d.Intern(tt.key), tt.key)
	}
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []string{"Cairo", "Lagos", "", "Accra"}, d.keys)
}

func TestInternBytesMatchesIntern(t *testing.T) {
	d := New(0)
	buf := []byte("Tomato")

	id := d.InternBytes(buf)
	assert.Equal(t, id, d.Intern("Tomato"))

	// The stored key must not alias the caller's buffer.
	copy(buf, "Potato")
	assert.Equal(t, "Tomato", d.Key(id))
	assert.Equal(t, int32(1), d.InternBytes(buf))
	assert.Equal(t, 2, d.Len())
}

func TestIdempotent(t *testing.T) {
	d := New(16)
	ids := make(map[string]int32)

	for range 10_000 {
		key := fmt.Sprintf("key_%d", rand.Intn(500))
		id := d.Intern(key)
		if prev, ok := ids[key]; ok {
			require.Equal(t, prev, id)
			continue
		}
		require.Equal(t, int32(len(ids)), id)
		ids[key] = id
	}
	assert.Equal(t, len(ids), d.Len())
}

func TestCollisionChain(t *testing.T) {
	// Force every key onto one digest to exercise the chain.
	const digest = 42
	d := New(2)
	keys := []string{"x", "y", "z"}
	for i, key := range keys {
		assert.Equal(t, noID, d.find(d.head(digest), key))
		assert.Equal(t, int32(i), d.insert(digest, d.head(digest), key))
	}

	for i, key := range keys {
		assert.Equal(t, int32(i), d.find(d.head(digest), key))
	}
	assert.Equal(t, noID, d.find(d.head(digest), "w"))
	assert.Equal(t, 3, d.Len())
}

func TestEach(t *testing.T) {
	d := New(0)
	d.Intern("b")
	d.Intern("a")
	d.Intern("c")

	var got []string
	d.Each(func(key string, id int32) {
		assert.Equal(t, int32(len(got)), id)
		got = append(got, key)
	})
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func BenchmarkInternBytes(b *testing.B) {
	d := New(128)
	keys := make([][]byte, 100)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("product_%d", i))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		d.InternBytes(keys[n%len(keys)])
	}
}
