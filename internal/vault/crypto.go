package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
)

const keySize = 32

// DeriveKey turns the keychain secret into an AES-256 key. The secret
// is either the 64-char hex string awsvault generates itself, or any
// user-supplied string of at least 32 bytes.
func DeriveKey(secret string) ([]byte, error) {
	if len(secret) == hex.EncodedLen(keySize) {
		if key, err := hex.DecodeString(secret); err == nil {
			return key, nil
		}
	}
	if len(secret) < keySize {
		return nil, errors.New("encryption key must be at least 32 bytes")
	}
	return []byte(secret[:keySize]), nil
}

// Encrypt seals plaintext with AES-256-GCM. The random nonce is
// prepended to the ciphertext.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt.
func Decrypt(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(data) < aesgcm.NonceSize() {
		return nil, errors.New("cipher too short")
	}
	nonce, ciphertext := data[:aesgcm.NonceSize()], data[aesgcm.NonceSize():]
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
