// Package pii reversibly protects sensitive donor fields (identity and tax
// numbers) so they can be recovered on authorized read paths, such as
// issuing a section 18A tax certificate.
package pii

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
)

const (
	keySize   = 32
	blockSize = aes.BlockSize
)

// Cipher encrypts and decrypts short strings with AES-256-CBC under a
// fixed key. The wire format is base64(ciphertext) with a zero IV, so a
// given plaintext always maps to the same stored value; this matches the
// format already present in existing rows and consumed by other readers.
type Cipher struct {
	key []byte
}

// New derives the fixed 256-bit key from the configured secret: the UTF-8
// bytes of the secret truncated or zero padded to 32 bytes.
func New(secret string) *Cipher {
	key := make([]byte, keySize)
	copy(key, secret)
	return &Cipher{key: key}
}

// Encrypt returns base64(AES-256-CBC(plaintext)). Empty input passes
// through unchanged.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := pad([]byte(plaintext))
	out := make([]byte, len(padded))

	iv := make([]byte, blockSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Empty input passes through unchanged. Input
// that is not valid base64, not a whole number of blocks, or not padded by
// the paired Encrypt fails with an error rather than returning garbage.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return ciphertext, nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	if len(raw) == 0 || len(raw)%blockSize != 0 {
		return "", fmt.Errorf("decrypt: ciphertext length %d is not a multiple of the block size", len(raw))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	out := make([]byte, len(raw))
	iv := make([]byte, blockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, raw)

	plain, err := unpad(out)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}

	return string(plain), nil
}

// pad applies PKCS#7 padding to a whole number of blocks.
func pad(data []byte) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
