package encrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// BlockSize is the AES block size. RollingProximityIdentifiers and the
// padded plaintext blocks they are derived from are exactly one block wide.
const BlockSize = 16

// ErrCryptoFailure is returned (wrapped) when an underlying cryptographic
// primitive could not complete. Such failures are deterministic and are
// never retried.
var ErrCryptoFailure = errors.New("encrypto: cryptographic operation failed")

// CipherSuite is the narrow capability interface behind which the
// block-cipher and key-derivation primitives live. Implementations must be
// pure: every call is a deterministic function of its inputs, safe for
// concurrent use.
type CipherSuite interface {
	// DeriveKey derives `length` bytes of key material from `secret`,
	// domain-separated by `info`.
	DeriveKey(secret, info []byte, length int) ([]byte, error)

	// EncryptBlock encrypts a single block of exactly BlockSize bytes.
	EncryptBlock(key, block []byte) ([]byte, error)

	// XORKeyStream applies a self-inverse keystream derived from `key` and
	// the BlockSize-byte `nonce` to `data`. Calling it twice with the same
	// key and nonce recovers the input.
	XORKeyStream(key, nonce, data []byte) ([]byte, error)
}

// DefaultSuite returns the CipherSuite used by the protocol: HKDF-SHA256
// for key derivation, AES-128 in ECB mode for single-block encryption and
// in CTR mode for the keystream transform.
func DefaultSuite() CipherSuite { return aesSuite{} }

type aesSuite struct{}

func (aesSuite) DeriveKey(secret, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("encrypto: invalid derived key length %d", length)
	}
	out := make([]byte, length)
	kdf := hkdf.New(sha256.New, secret, nil, info)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}
	return out, nil
}

func (aesSuite) EncryptBlock(key, block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("encrypto: plaintext block must be %d bytes, got %d", BlockSize, len(block))
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}
	out := make([]byte, BlockSize)
	c.Encrypt(out, block)
	return out, nil
}

func (aesSuite) XORKeyStream(key, nonce, data []byte) ([]byte, error) {
	if len(nonce) != BlockSize {
		return nil, fmt.Errorf("encrypto: nonce must be %d bytes, got %d", BlockSize, len(nonce))
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}
	out := make([]byte, len(data))
	cipher.NewCTR(c, nonce).XORKeyStream(out, data)
	return out, nil
}
