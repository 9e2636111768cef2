// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"math/rand"
	"testing"

	"github.com/aristanetworks/hashtab/key"
)

// Hashable represents a key type that knows how to hash and compare
// itself, for callers whose key type can't just be handed to
// hashtab.HashBytes/HashString.
type Hashable interface {
	Hash() uint64
	Equal(other interface{}) bool
}

type dumbHashable struct {
	dumb interface{}
}

func (d dumbHashable) Equal(other interface{}) bool {
	if o, ok := other.(dumbHashable); ok {
		return d.dumb == o.dumb
	}
	return false
}

func (d dumbHashable) Hash() uint64 {
	return 1234567890
}

func TestMapSetGet(t *testing.T) {
	m := New[Hashable, any](0,
		func(h Hashable) uint64 { return h.Hash() },
		func(x, y Hashable) bool { return x.Equal(y) })
	tests := []struct {
		setkey interface{}
		getkey interface{}
		val    interface{}
		found  bool
	}{{
		setkey: dumbHashable{dumb: "hashable1"},
		getkey: dumbHashable{dumb: "hashable1"},
		val:    1,
		found:  true,
	}, {
		getkey: dumbHashable{dumb: "hashable2"},
		val:    nil,
		found:  false,
	}, {
		setkey: dumbHashable{dumb: "hashable2"},
		getkey: dumbHashable{dumb: "hashable2"},
		val:    2,
		found:  true,
	}, {
		getkey: dumbHashable{dumb: "hashable42"},
		val:    nil,
		found:  false,
	}, {
		setkey: key.New(map[string]interface{}{"a": int32(1)}),
		getkey: key.New(map[string]interface{}{"a": int32(1)}),
		val:    "foo",
		found:  true,
	}, {
		getkey: key.New(map[string]interface{}{"a": int32(2)}),
		val:    nil,
		found:  false,
	}, {
		setkey: key.New(map[string]interface{}{"a": int32(2)}),
		getkey: key.New(map[string]interface{}{"a": int32(2)}),
		val:    "bar",
		found:  true,
	}}
	for _, tcase := range tests {
		if tcase.setkey != nil {
			m.Set(tcase.setkey.(Hashable), tcase.val)
		}
		val, found := m.Get(tcase.getkey.(Hashable))
		if found != tcase.found {
			t.Errorf("found is %t, but expected found %t", found, tcase.found)
		}
		if val != tcase.val {
			t.Errorf("val is %v for key %v, but expected val %v", val, tcase.getkey, tcase.val)
		}
	}
}

func TestMapDelete(t *testing.T) {
	m := New[Hashable, any](0,
		func(h Hashable) uint64 { return h.Hash() },
		func(x, y Hashable) bool { return x.Equal(y) })
	k := dumbHashable{dumb: "gone-soon"}
	m.Set(k, 7)
	if _, found := m.Get(k); !found {
		t.Fatal("expected key to be present before delete")
	}
	m.Delete(k)
	if _, found := m.Get(k); found {
		t.Fatal("expected key to be absent after delete")
	}
	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", m.Len())
	}
}

func BenchmarkMapGrow(b *testing.B) {
	keys := make([]key.Key, 150)
	for j := 0; j < len(keys); j++ {
		keys[j] = key.New(map[string]interface{}{
			"foobar": 100,
			"baz":    j,
		})
	}
	b.Run("key.Map", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			m := key.NewMap()
			for j := 0; j < len(keys); j++ {
				m.Set(keys[j], "foobar")
			}
			if m.Len() != len(keys) {
				b.Fatal(m)
			}
		}
	})
	b.Run("Hashmap", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			m := New[Hashable, any](0,
				func(h Hashable) uint64 { return h.Hash() },
				func(x, y Hashable) bool { return x.Equal(y) })
			for j := 0; j < len(keys); j++ {
				m.Set(keys[j].(Hashable), "foobar")
			}
			if m.Len() != len(keys) {
				b.Fatal(m)
			}
		}
	})
	b.Run("Hashmap-presize", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			m := New[Hashable, any](150,
				func(h Hashable) uint64 { return h.Hash() },
				func(x, y Hashable) bool { return x.Equal(y) })
			for j := 0; j < len(keys); j++ {
				m.Set(keys[j].(Hashable), "foobar")
			}
			if m.Len() != len(keys) {
				b.Fatal(m)
			}
		}
	})
}

func BenchmarkMapGet(b *testing.B) {
	keys := make([]key.Key, 150)
	for j := 0; j < len(keys); j++ {
		keys[j] = key.New(map[string]interface{}{
			"foobar": 100,
			"baz":    j,
		})
	}
	keysRandomOrder := make([]key.Key, len(keys))
	copy(keysRandomOrder, keys)
	rand.Shuffle(len(keysRandomOrder), func(i, j int) {
		keysRandomOrder[i], keysRandomOrder[j] = keysRandomOrder[j], keysRandomOrder[i]
	})
	b.Run("key.Map", func(b *testing.B) {
		m := key.NewMap()
		for j := 0; j < len(keys); j++ {
			m.Set(keys[j], "foobar")
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for _, k := range keysRandomOrder {
				_, ok := m.Get(k)
				if !ok {
					b.Fatal("didn't find key")
				}
			}
		}
	})
	b.Run("Hashmap", func(b *testing.B) {
		m := New[Hashable, any](0,
			func(h Hashable) uint64 { return h.Hash() },
			func(x, y Hashable) bool { return x.Equal(y) })
		for j := 0; j < len(keys); j++ {
			m.Set(keys[j].(Hashable), "foobar")
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for _, k := range keysRandomOrder {
				_, ok := m.Get(k.(Hashable))
				if !ok {
					b.Fatal("didn't find key")
				}
			}
		}
	})
}
