// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

// Add inserts elem, keyed by TypeDescriptor.GetKey(elem). Reports whether
// it was actually inserted: false means a matching key already existed and
// elem was not added.
func (t *Table[E, K]) Add(elem E) bool {
	added, _ := t.AddOrFind(elem)
	return added
}

// AddOrFind inserts elem if no element with its key exists yet. If one
// already exists, it is returned unchanged alongside false.
func (t *Table[E, K]) AddOrFind(elem E) (added bool, existing E) {
	key := t.desc.getKey(elem)
	h := t.hash(key)
	t.rehashStepOnRead()
	if found, _, _, _, ok := t.find(h, key); ok {
		return false, found
	}
	t.insert(h, elem)
	return true, existing
}

// Replace inserts elem, overwriting any existing element with the same
// key. The displaced element (if any) is passed to the destructor, since
// unlike Pop its purpose is to vanish rather than be handed back. Reports
// whether a new element was inserted (true) versus an existing one
// overwritten (false).
func (t *Table[E, K]) Replace(elem E) bool {
	key := t.desc.getKey(elem)
	h := t.hash(key)
	t.rehashStepOnRead()
	if _, bucketIdx, slot, ti, ok := t.find(h, key); ok {
		b := &t.tables[ti][bucketIdx]
		if t.desc.Destructor != nil {
			t.desc.Destructor(t, b.elements[slot])
		}
		b.elements[slot] = elem
		return false
	}
	t.insert(h, elem)
	return true
}

// insert places elem under hash into the active table, growing and
// rehashing first if needed. The caller must already have established that
// no element with this key exists.
func (t *Table[E, K]) insert(hash uint64, elem E) {
	t.expandIfNeeded()
	t.rehashStepOnWrite()
	bucketIdx, slot, ti := t.findForInsert(hash)
	t.insertAt(ti, bucketIdx, slot, hash, elem)
}

// Pop removes and returns the element matching key, without invoking the
// destructor (the element is handed back to the caller, who owns its
// lifetime from here on). Reports whether a match was found.
func (t *Table[E, K]) Pop(key K) (elem E, ok bool) {
	if t.Len() == 0 {
		return elem, false
	}
	h := t.hash(key)
	t.rehashStepOnRead()
	t.rehashStepOnWrite()
	_, bucketIdx, slot, ti, found := t.find(h, key)
	if !found {
		return elem, false
	}
	elem = t.removeAt(ti, bucketIdx, slot, true)
	t.shrinkIfNeeded()
	return elem, true
}

// Delete removes the element matching key and invokes the destructor (if
// set) on it. Reports whether a match was found.
func (t *Table[E, K]) Delete(key K) bool {
	elem, ok := t.Pop(key)
	if !ok {
		return false
	}
	if t.desc.Destructor != nil {
		t.desc.Destructor(t, elem)
	}
	return true
}
