package tokenstore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// Sealed encrypts tokens before handing them to the wrapped Store.
type Sealed struct {
	inner Store
	key   [32]byte
}

// NewSealed derives a sealing key from secret and wraps inner.
func NewSealed(inner Store, secret string) (*Sealed, error) {
	if secret == "" {
		return nil, errors.New("sealing secret is empty")
	}
	s := &Sealed{inner: inner}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("portal-token-seal"))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sealed) Load(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Load(ctx, key)
	if err != nil {
		return "", err
	}
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrCorrupt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrCorrupt
	}
	return string(plain), nil
}

func (s *Sealed) Save(ctx context.Context, key, token string, ttl time.Duration) error {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return err
	}
	box := secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key)
	return s.inner.Save(ctx, key, base64.RawURLEncoding.EncodeToString(box), ttl)
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
