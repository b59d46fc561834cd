package encrypto

import (
	"fmt"
	"sync"
)

// MetadataCipher encrypts and decrypts the associated metadata record
// broadcast alongside each RollingProximityIdentifier. The
// AssociatedEncryptedMetadataKey is derived lazily on first use and cached;
// the sync.Once guard keeps a shared instance off a per-call lock on the
// hot path.
type MetadataCipher struct {
	tekMaterial    []byte
	info           []byte
	keyLength      int
	metadataLength int
	suite          CipherSuite

	once      sync.Once
	aemk      []byte
	deriveErr error
}

// NewMetadataCipher returns a MetadataCipher for tek. No derivation happens
// until the first Encrypt or Decrypt call.
func NewMetadataCipher(tek TemporaryExposureKey, cfg Config) *MetadataCipher {
	return &MetadataCipher{
		tekMaterial:    tek.KeyData(),
		info:           []byte(cfg.AEMKInfo),
		keyLength:      cfg.KeyLength,
		metadataLength: cfg.MetadataLength,
		suite:          cfg.suite(),
	}
}

func (m *MetadataCipher) key() ([]byte, error) {
	m.once.Do(func() {
		m.aemk, m.deriveErr = m.suite.DeriveKey(m.tekMaterial, m.info, m.keyLength)
	})
	return m.aemk, m.deriveErr
}

// Encrypt transforms the metadata plaintext into associated encrypted
// metadata bound to rpi. The identifier doubles as the keystream nonce,
// which is safe only because the broadcast schedule uses each identifier to
// encrypt exactly one metadata record.
func (m *MetadataCipher) Encrypt(rpi RollingProximityIdentifier, metadata []byte) ([]byte, error) {
	if len(metadata) != m.metadataLength {
		return nil, fmt.Errorf("encrypto: metadata must be %d bytes, got %d", m.metadataLength, len(metadata))
	}
	aemk, err := m.key()
	if err != nil {
		return nil, err
	}
	return m.suite.XORKeyStream(aemk, rpi[:], metadata)
}

// Decrypt recovers the metadata plaintext from aem. The transform is
// self-inverse and carries no authentication tag: decrypting with the wrong
// identifier or key yields garbage bytes, not an error, so success is no
// proof of a correct key.
func (m *MetadataCipher) Decrypt(rpi RollingProximityIdentifier, aem []byte) ([]byte, error) {
	if len(aem) != m.metadataLength {
		return nil, fmt.Errorf("encrypto: associated encrypted metadata must be %d bytes, got %d", m.metadataLength, len(aem))
	}
	aemk, err := m.key()
	if err != nil {
		return nil, err
	}
	return m.suite.XORKeyStream(aemk, rpi[:], aem)
}

// GenerateAEMKey derives an AssociatedEncryptedMetadataKey directly from
// raw key material.
func GenerateAEMKey(tekMaterial []byte, info string, length int) ([]byte, error) {
	return DefaultSuite().DeriveKey(tekMaterial, []byte(info), length)
}

// EncryptOrDecrypt applies the metadata keystream transform with an
// explicit key, independent of any TemporaryExposureKey value. Encryption
// and decryption are the same operation.
func EncryptOrDecrypt(aemKey []byte, rpi RollingProximityIdentifier, data []byte) ([]byte, error) {
	return DefaultSuite().XORKeyStream(aemKey, rpi[:], data)
}
