package stream

import "errors"

var (
	// ErrKeyRejected marks a stream aborted because an encrypted frame
	// failed to decrypt. A wrong key fails identically on retry, so the
	// caller must obtain new key material before trying again.
	ErrKeyRejected = errors.New("encryption key rejected by stream")

	// ErrStreamAborted marks a transport-level failure or cancellation:
	// connection drop, malformed frame, server error frame, or context
	// cancellation. It carries no implication about the key.
	ErrStreamAborted = errors.New("stream aborted")
)
