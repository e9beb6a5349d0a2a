package leveldb

import (
	"sync"

	"github.com/pkg/errors"
	ldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/veritas-L2/triedb/storage"
)

// syncWrites makes every write durable before the call returns. The trie
// engine assumes synchronous durability from its backend; there is no
// separate flush call in the contract.
var syncWrites = &opt.WriteOptions{Sync: true}

// Handle is the shared owner of one open LevelDB instance bound to one
// directory. Adapters sharing a handle see each other's writes immediately.
// The engine is closed when the last reference is released, which also
// releases the directory lock so the path can be reopened.
type Handle struct {
	path string

	mu       sync.Mutex
	db       *ldb.DB
	refs     int
	released bool
}

func openHandle(path string) (*Handle, error) {
	db, err := ldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb store at %q", path)
	}
	return &Handle{path: path, db: db}, nil
}

// Path returns the directory this handle was opened at.
func (h *Handle) Path() string {
	return h.path
}

func (h *Handle) acquire() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return errors.Errorf("leveldb store at %q is already closed", h.path)
	}
	h.refs++
	return nil
}

func (h *Handle) release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refs == 0 {
		return errors.Errorf("leveldb store at %q released more times than acquired", h.path)
	}
	h.refs--
	if h.refs > 0 {
		return nil
	}
	h.released = true
	return h.db.Close()
}

// Database adapts a LevelDB handle to the storage.Store contract consumed by
// the trie engine. It adds no locking of its own: goleveldb serializes
// concurrent reads and writes internally.
type Database struct {
	handle *Handle

	mu     sync.Mutex
	closed bool
}

var _ storage.Store = (*Database)(nil)

// Open opens the store at path, creating it if absent, and returns an adapter
// holding the first reference to the handle. Reopening an existing path
// reconstructs all prior state.
func Open(path string) (*Database, error) {
	handle, err := openHandle(path)
	if err != nil {
		return nil, err
	}
	handle.refs = 1
	return &Database{handle: handle}, nil
}

// New opens the store at path and panics when it cannot. A usable store is a
// hard precondition for any trie work; callers that want to recover from a
// bad path use Open instead.
func New(path string) *Database {
	db, err := Open(path)
	if err != nil {
		panic(err)
	}
	return db
}

// Share returns a new adapter on the same handle. The underlying engine stays
// open until every adapter sharing the handle has been closed.
func (db *Database) Share() (*Database, error) {
	if err := db.handle.acquire(); err != nil {
		return nil, err
	}
	return &Database{handle: db.handle}, nil
}

// Handle returns the shared handle backing this adapter.
func (db *Database) Handle() *Handle {
	return db.handle
}

// Close releases this adapter's reference to the handle. The engine is closed
// when the last reference is gone. Closing an adapter twice is an error.
func (db *Database) Close() error {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return errors.New("leveldb adapter already closed")
	}
	db.closed = true
	db.mu.Unlock()

	return db.handle.release()
}

// Get returns the value stored under key. A missing key is a successful nil,
// never an error.
func (db *Database) Get(key []byte) ([]byte, error) {
	value, err := db.handle.db.Get(key, nil)
	if err == ldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, storage.WrapEngineError(err)
	}
	return value, nil
}

// Put stores value under key, overwriting any previous value. The write is
// synced to disk before Put returns.
func (db *Database) Put(key []byte, value []byte) error {
	return storage.WrapEngineError(db.handle.db.Put(key, value, syncWrites))
}

// Has reports whether key holds a value.
func (db *Database) Has(key []byte) (bool, error) {
	ok, err := db.handle.db.Has(key, nil)
	if err != nil {
		return false, storage.WrapEngineError(err)
	}
	return ok, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (db *Database) Delete(key []byte) error {
	return storage.WrapEngineError(db.handle.db.Delete(key, syncWrites))
}
