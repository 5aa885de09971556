// Package tokencrypt cifra os refresh tokens persistidos.
//
// Formato: base64(IV(16) || Tag(16) || Ciphertext) com AES-256-GCM.
package tokencrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"golang.org/x/crypto/hkdf"
)

const (
	KeySize   = 32
	NonceSize = 16
	TagSize   = 16
)

type KeyDerivation string

const (
	// KeyDerivationLegacy completa o segredo com zeros ou o trunca em 32 bytes
	KeyDerivationLegacy KeyDerivation = "legacy"
	// KeyDerivationHKDF deriva a chave com HKDF-SHA256; o formato do blob não muda
	KeyDerivationHKDF KeyDerivation = "hkdf"
)

var hkdfInfo = []byte("google-ads-refresh-token")

type Cipher struct {
	aead cipher.AEAD
}

func New(secret string, derivation KeyDerivation) (*Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: ENCRYPTION_KEY", domain.ErrConfiguration)
	}

	key, err := deriveKey(secret, derivation)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cifra AES: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

func deriveKey(secret string, derivation KeyDerivation) ([]byte, error) {
	key := make([]byte, KeySize)

	switch derivation {
	case "", KeyDerivationLegacy:
		copy(key, secret)
	case KeyDerivationHKDF:
		if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo), key); err != nil {
			return nil, fmt.Errorf("erro ao derivar chave: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: derivação de chave desconhecida %q", domain.ErrConfiguration, derivation)
	}

	return key, nil
}

// Encrypt usa um IV aleatório novo a cada chamada
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("erro ao gerar IV: %w", err)
	}

	// Seal devolve ciphertext || tag
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	blob := make([]byte, 0, NonceSize+TagSize+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

func (c *Cipher) Decrypt(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: base64 inválido", domain.ErrDecryption)
	}

	if len(raw) < NonceSize+TagSize {
		return "", fmt.Errorf("%w: blob curto demais", domain.ErrDecryption)
	}

	nonce := raw[:NonceSize]
	tag := raw[NonceSize : NonceSize+TagSize]
	ciphertext := raw[NonceSize+TagSize:]

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: tag de autenticação inválida", domain.ErrDecryption)
	}

	return string(plaintext), nil
}
