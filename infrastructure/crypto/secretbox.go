package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	nonceSize = 24
	prefix    = "sb1:"
)

var (
	ErrEmptySecret   = errors.New("credentials secret is empty")
	ErrMalformed     = errors.New("malformed sealed value")
	ErrDecryptFailed = errors.New("could not decrypt sealed value")
)

// Sealer cifra credenciais de integração antes de irem para o banco
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

type SecretBox struct {
	key [32]byte
}

// NewSecretBox deriva a chave de 32 bytes do segredo configurado
func NewSecretBox(secret string) (*SecretBox, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &SecretBox{key: blake2b.Sum256([]byte(secret))}, nil
}

func (s *SecretBox) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("erro ao gerar nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return prefix + base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *SecretBox) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	if !strings.HasPrefix(sealed, prefix) {
		return "", ErrMalformed
	}

	box, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, prefix))
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", ErrMalformed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plaintext, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}
