package storage

// Store is the capability set a Merkle-Patricia trie engine requires from its
// persistence backend. Keys and values are arbitrary byte strings; for trie
// usage keys are content hashes of encoded nodes or the trie's root pointer,
// but the store imposes no structure on either.
//
// All implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or nil when the key is absent.
	// Absence is a successful outcome, never an error.
	Get(key []byte) (value []byte, err error)

	// Put stores value under key, overwriting any previous value. A successful
	// Put is durable before it returns.
	Put(key []byte, value []byte) error

	// Has reports whether key currently holds a value. A missing key is a
	// successful false.
	Has(key []byte) (bool, error)

	// Delete removes key and its value. Deleting an absent key succeeds with
	// no effect.
	Delete(key []byte) error
}
