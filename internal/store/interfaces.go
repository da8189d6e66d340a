package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// MemoryPath is the KV path value that selects the non-persistent
// in-process store instead of an on-disk bitcask database.
const MemoryPath = ":memory:"

// New opens the [KeyValue] backend for path: the in-memory store for
// MemoryPath, a bitcask database otherwise.
func New(path string) (KeyValue, error) {
	if path == MemoryPath {
		return NewMemoryStore(), nil
	}
	return NewBitcaskStore(path)
}

// KeyValue is the persisted key-value slot store backing the keyring.
// The encryption fingerprint occupies a single named entry; presence or
// absence of that entry is the sole signal that encryption is configured.
type KeyValue interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any previous value, and
	// syncs the write to disk for durable backends.
	Put(key string, value []byte) error

	// Delete removes the entry under key. Deleting a missing key is not
	// an error.
	Delete(key string) error

	// Has reports whether an entry exists under key.
	Has(key string) bool

	// Close releases the underlying storage handle.
	Close() error
}
