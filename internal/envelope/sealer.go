package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"
)

// Algorithm names the AEAD used for the simulated envelope.
const Algorithm = "AES-256-GCM"

// Encrypted holds one sealed payload with the metadata needed to open it.
type Encrypted struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Algorithm  string `json:"algorithm"`
	Timestamp  string `json:"timestamp"`
}

// Sealer wraps an AEAD cipher for the encrypt/decrypt round trip. The
// same process holds the key on both sides; this is bookkeeping, not
// confidentiality between parties.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid encryption key length: expected %d bytes, got %d", keySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init failed: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init failed: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts the plaintext under a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) (Encrypted, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Encrypted{}, fmt.Errorf("encryption failed: %w", err)
	}
	ciphertext := s.aead.Seal(nil, nonce, plaintext, nil)
	return Encrypted{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Algorithm:  Algorithm,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// Open decrypts a sealed payload.
func (s *Sealer) Open(enc Encrypted) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(enc.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(enc.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	if len(nonce) != s.aead.NonceSize() {
		return nil, fmt.Errorf("decryption failed: invalid nonce length %d", len(nonce))
	}
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}
