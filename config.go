package encrypto

import "time"

// ENIntervalNumber is a number for each 10 minute time window that’s shared
// between all devices participating in the protocol. These time windows are
// derived from timestamps in Unix Epoch Time.
type ENIntervalNumber uint32

// Default protocol constants, as published in the Exposure Notification
// Cryptography Specification (v1.2).
const (
	// DefaultRollingPeriod is the duration for which a TemporaryExposureKey
	// is valid (in multiples of 10 minutes). The protocol defines it as 144,
	// achieving a key validity of 24 hours.
	DefaultRollingPeriod = 144

	// DefaultRPIKInfo is the HKDF info string for deriving a
	// RollingProximityIdentifierKey from a TemporaryExposureKey.
	DefaultRPIKInfo = "EN-RPIK"

	// DefaultAEMKInfo is the HKDF info string for deriving an
	// AssociatedEncryptedMetadataKey from a TemporaryExposureKey.
	DefaultAEMKInfo = "EN-AEMK"

	// DefaultRPIPaddingPrefix is the ASCII prefix of the padded plaintext
	// block that is encrypted to produce a RollingProximityIdentifier.
	DefaultRPIPaddingPrefix = "EN-RPI"

	// DefaultMatchingClockDrift is the number of 10 minute intervals of
	// clock drift tolerated on either side of a scan when matching
	// identifiers against diagnosis keys.
	DefaultMatchingClockDrift = 12
)

// Config carries the numeric constants and strings used throughout the
// protocol. All values are pass-through configuration; the zero value is not
// usable — start from DefaultConfig and override fields as needed.
type Config struct {
	// KeyLength is the output length in bytes of derived keys (RPIK, AEMK).
	KeyLength int

	// RPIKInfo and AEMKInfo are the HKDF info strings for the two key
	// derivations.
	RPIKInfo string
	AEMKInfo string

	// RPIPaddingPrefix is written at the start of every padded plaintext
	// block.
	RPIPaddingPrefix string

	// RollingPeriod is the nominal number of 10 minute intervals a
	// TemporaryExposureKey remains valid.
	RollingPeriod uint32

	// MetadataLength is the exact size in bytes of the associated metadata
	// record.
	MetadataLength int

	// MatchingClockDrift is the number of 10 minute intervals of clock
	// drift tolerated when matching scanned identifiers. Not consumed by
	// the crypto operations themselves.
	MatchingClockDrift uint32

	// Suite overrides the cryptographic primitives. Nil selects the
	// default AES-128 + HKDF-SHA256 suite.
	Suite CipherSuite
}

// DefaultConfig returns a Config holding the published protocol constants.
func DefaultConfig() Config {
	return Config{
		KeyLength:          KeyLength,
		RPIKInfo:           DefaultRPIKInfo,
		AEMKInfo:           DefaultAEMKInfo,
		RPIPaddingPrefix:   DefaultRPIPaddingPrefix,
		RollingPeriod:      DefaultRollingPeriod,
		MetadataLength:     MetadataLength,
		MatchingClockDrift: DefaultMatchingClockDrift,
	}
}

func (c Config) suite() CipherSuite {
	if c.Suite != nil {
		return c.Suite
	}
	return DefaultSuite()
}

// NewENIntervalNumber returns the `ENIntervalNumber`, e.g. the 10 minute time
// window since Unix Epoch Time, that the given time `t` is in.
func NewENIntervalNumber(t time.Time) ENIntervalNumber {
	return ENIntervalNumber(t.Unix() / (60 * 10))
}

// NewRollingStartNumber returns the `ENIntervalNumber` for the start period
// of a TemporaryExposureKey with generation time `t`: the most recent
// interval number that is a multiple of `rollingPeriod`.
func NewRollingStartNumber(t time.Time, rollingPeriod uint32) ENIntervalNumber {
	return NewENIntervalNumber(t) / ENIntervalNumber(rollingPeriod) * ENIntervalNumber(rollingPeriod)
}
