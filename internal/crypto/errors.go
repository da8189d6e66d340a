package crypto

import "errors"

var (
	// ErrPassphraseEmpty is returned by Setup when the passphrase is
	// empty or whitespace-only.
	ErrPassphraseEmpty = errors.New("passphrase is empty")

	// ErrKeyNotConfigured is returned when an operation needs an
	// encryption key and the keyring slot is empty.
	ErrKeyNotConfigured = errors.New("encryption key is not configured")

	// ErrFingerprintTooShort is returned when the persisted fingerprint
	// is shorter than the 32-character derivation prefix.
	ErrFingerprintTooShort = errors.New("key fingerprint is too short")

	// ErrEncryptFailed wraps any failure of the encrypt path once a key
	// was available, including serialization failures.
	ErrEncryptFailed = errors.New("encryption failed")

	// ErrDecryptFailed wraps any failure of the decrypt path: malformed
	// base64, short envelope, authentication failure, or invalid JSON
	// plaintext. Decrypt never returns unauthenticated data.
	ErrDecryptFailed = errors.New("decryption failed")

	// ErrEnvelopeTooShort marks an envelope whose decoded payload is
	// shorter than the 12-byte nonce. Detected before the AEAD runs.
	ErrEnvelopeTooShort = errors.New("envelope is too short")

	// ErrAuthentication marks an AEAD tag verification failure. This is
	// the only decrypt failure treated as evidence of a wrong key.
	ErrAuthentication = errors.New("message authentication failed")
)
