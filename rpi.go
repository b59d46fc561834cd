package encrypto

import (
	"errors"
	"fmt"
)

// RollingProximityIdentifier is a privacy-preserving identifier that is
// broadcast in Bluetooth payloads. Without knowledge of the
// RollingProximityIdentifierKey it is indistinguishable from random.
type RollingProximityIdentifier [BlockSize]byte

// ErrIntervalOutOfRange is returned (wrapped) when an identifier is
// requested for an interval number outside the key's validity window.
var ErrIntervalOutOfRange = errors.New("encrypto: interval number outside key validity window")

// IdentifierGenerator produces RollingProximityIdentifiers for a single
// TemporaryExposureKey. The RPIK is derived once at construction and
// retained for the generator's lifetime; generators are not reused across
// keys. A constructed generator is read-only and safe for concurrent use.
type IdentifierGenerator struct {
	rpik          []byte
	start, end    ENIntervalNumber
	rollingPeriod uint32
	paddingPrefix []byte
	suite         CipherSuite
	cache         *PaddedBlockCache
}

// NewIdentifierGenerator derives the RollingProximityIdentifierKey for tek
// and returns a generator bound to the key's validity window. cache may be
// nil; when present, bulk generation reuses its precomputed plaintext
// blocks.
func NewIdentifierGenerator(tek TemporaryExposureKey, cache *PaddedBlockCache, cfg Config) (*IdentifierGenerator, error) {
	suite := cfg.suite()
	rpik, err := suite.DeriveKey(tek.KeyData(), []byte(cfg.RPIKInfo), cfg.KeyLength)
	if err != nil {
		return nil, err
	}
	return &IdentifierGenerator{
		rpik:          rpik,
		start:         tek.RollingStartIntervalNumber(),
		end:           tek.RollingEndIntervalNumber(),
		rollingPeriod: tek.RollingPeriod(),
		paddingPrefix: []byte(cfg.RPIPaddingPrefix),
		suite:         suite,
		cache:         cache,
	}, nil
}

// GenerateID returns the RollingProximityIdentifier for the given interval
// number, which must lie inside the key's validity window.
func (g *IdentifierGenerator) GenerateID(enIntervalNumber ENIntervalNumber) (RollingProximityIdentifier, error) {
	var rpi RollingProximityIdentifier
	if enIntervalNumber < g.start || enIntervalNumber >= g.end {
		return rpi, fmt.Errorf("%w: %d not in [%d, %d)", ErrIntervalOutOfRange, enIntervalNumber, g.start, g.end)
	}
	var block [BlockSize]byte
	writePaddedBlock(block[:], enIntervalNumber, g.paddingPrefix)
	out, err := g.suite.EncryptBlock(g.rpik, block[:])
	if err != nil {
		return rpi, err
	}
	copy(rpi[:], out)
	return rpi, nil
}

// GenerateIDs returns one identifier per interval in the key's validity
// window, in ascending interval order, using scratch to stage the padded
// plaintext blocks. scratch should be rollingPeriod*BlockSize bytes.
//
// If scratch is too small for the full rolling period the output is clamped
// to the number of whole blocks that fit, without error. This bounds
// untrusted rolling-period values from downloaded keys, but it also means a
// mis-sized buffer silently drops the trailing identifiers — callers must
// size scratch from the key's actual rolling period.
func (g *IdentifierGenerator) GenerateIDs(scratch []byte) ([]RollingProximityIdentifier, error) {
	n := int(g.rollingPeriod)
	if max := len(scratch) / BlockSize; n > max {
		n = max
	}
	buf := scratch[:n*BlockSize]
	if cached, ok := g.cache.CachedBlocks(g.start); ok && len(cached) >= len(buf) {
		copy(buf, cached)
	} else {
		fillPaddedBlocks(buf, g.start, g.paddingPrefix)
	}

	ids := make([]RollingProximityIdentifier, n)
	for i := range ids {
		out, err := g.suite.EncryptBlock(g.rpik, buf[i*BlockSize:(i+1)*BlockSize])
		if err != nil {
			return nil, err
		}
		copy(ids[i][:], out)
	}
	return ids, nil
}

// GenerateRPIKey derives a RollingProximityIdentifierKey directly from raw
// key material, for callers that need the RPIK without binding it to a
// validity window.
func GenerateRPIKey(tekMaterial []byte, info string, length int) ([]byte, error) {
	return DefaultSuite().DeriveKey(tekMaterial, []byte(info), length)
}
