package encrypto

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// KeyLength is the size in bytes of a TemporaryExposureKey and of the keys
// derived from it.
const KeyLength = 16

// TemporaryExposureKey is the root secret for one rolling period. All
// devices generate a new TEK at the same time — at the beginning of an
// interval whose ENIntervalNumber is a multiple of the rolling period.
//
// The value is immutable once built: key material and validity window are
// set by the constructor and never change.
type TemporaryExposureKey struct {
	keyData                    [KeyLength]byte
	rollingStartIntervalNumber ENIntervalNumber
	rollingPeriod              uint32

	// TransmissionRiskLevel and ReportType classify the key when it is
	// part of a diagnosis upload. They are opaque to the cryptographic
	// operations in this package.
	TransmissionRiskLevel int
	ReportType            int
}

// NewTemporaryExposureKey builds a TemporaryExposureKey from raw key
// material and its validity window. keyData must be exactly KeyLength bytes
// and rollingPeriod must be positive; rolling periods larger than the
// nominal 144 are accepted, since keys parsed from downloaded diagnosis
// files may carry them.
func NewTemporaryExposureKey(keyData []byte, rollingStartIntervalNumber ENIntervalNumber, rollingPeriod uint32) (TemporaryExposureKey, error) {
	var tek TemporaryExposureKey
	if len(keyData) != KeyLength {
		return tek, fmt.Errorf("encrypto: key data must be %d bytes, got %d", KeyLength, len(keyData))
	}
	if rollingPeriod == 0 {
		return tek, errors.New("encrypto: rolling period must be positive")
	}
	copy(tek.keyData[:], keyData)
	tek.rollingStartIntervalNumber = rollingStartIntervalNumber
	tek.rollingPeriod = rollingPeriod
	return tek, nil
}

// GenerateTemporaryExposureKey returns a new TemporaryExposureKey with key
// material from `crypto/rand`, valid from rollingStartIntervalNumber for
// rollingPeriod intervals.
func GenerateTemporaryExposureKey(rollingStartIntervalNumber ENIntervalNumber, rollingPeriod uint32) (TemporaryExposureKey, error) {
	var key [KeyLength]byte
	if _, err := rand.Read(key[:]); err != nil {
		return TemporaryExposureKey{}, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}
	return NewTemporaryExposureKey(key[:], rollingStartIntervalNumber, rollingPeriod)
}

// KeyData returns a copy of the 16-byte key material.
func (k TemporaryExposureKey) KeyData() []byte {
	out := make([]byte, KeyLength)
	copy(out, k.keyData[:])
	return out
}

// RollingStartIntervalNumber returns the first interval number the key is
// valid for.
func (k TemporaryExposureKey) RollingStartIntervalNumber() ENIntervalNumber {
	return k.rollingStartIntervalNumber
}

// RollingPeriod returns the number of 10 minute intervals the key remains
// valid.
func (k TemporaryExposureKey) RollingPeriod() uint32 {
	return k.rollingPeriod
}

// RollingEndIntervalNumber returns the first interval number past the key's
// validity window.
func (k TemporaryExposureKey) RollingEndIntervalNumber() ENIntervalNumber {
	return k.rollingStartIntervalNumber + ENIntervalNumber(k.rollingPeriod)
}

// Valid reports whether the key is valid for the given interval number.
func (k TemporaryExposureKey) Valid(enin ENIntervalNumber) bool {
	return enin >= k.rollingStartIntervalNumber && enin < k.RollingEndIntervalNumber()
}
