package models

// Envelope is the wire unit for an encrypted payload.
//
// The single encrypted_data field carries base64(nonce || ciphertext+tag)
// produced by AES-256-GCM. The field name is part of the protocol shared
// with the backend: no other name is accepted on either side.
type Envelope struct {
	EncryptedData string `json:"encrypted_data"`
}
