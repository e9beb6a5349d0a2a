package memdb

import (
	"sync"

	"github.com/veritas-L2/triedb/storage"
)

// Database is a memory-backed storage.Store. It keeps every guarantee of the
// contract except durability, which makes it the standard engine-free double
// in tests and a backend for throwaway tries.
type Database struct {
	lock sync.RWMutex
	db   map[string][]byte
}

var _ storage.Store = (*Database)(nil)

// New returns an empty in-memory store.
func New() *Database {
	return &Database{
		db: make(map[string][]byte),
	}
}

// NewWithCap returns an empty in-memory store sized for the given number of
// entries.
func NewWithCap(size int) *Database {
	return &Database{
		db: make(map[string][]byte, size),
	}
}

// Put stores a copy of value under key.
func (db *Database) Put(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db[string(key)] = copyBytes(value)
	return nil
}

// Get returns a copy of the value stored under key, or nil when absent.
func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return copyBytes(entry), nil
	}
	return nil, nil
}

// Has reports whether key holds a value.
func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	_, ok := db.db[string(key)]
	return ok, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (db *Database) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

// Keys returns every key currently in the store.
func (db *Database) Keys() [][]byte {
	db.lock.RLock()
	defer db.lock.RUnlock()

	keys := make([][]byte, 0, len(db.db))
	for key := range db.db {
		keys = append(keys, []byte(key))
	}
	return keys
}

// Len returns the number of stored key-value pairs.
func (db *Database) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()

	return len(db.db)
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
