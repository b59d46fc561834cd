package encrypto

import "fmt"

// MetadataLength is the size in bytes of the associated metadata record.
const MetadataLength = 4

// BLEMetadata is the plaintext metadata record broadcast (encrypted)
// alongside each RollingProximityIdentifier: protocol version, calibrated
// transmit power, and two reserved bytes.
type BLEMetadata struct {
	Version byte
	TxPower int8
}

// Marshal returns the 4-byte wire form of the record. The reserved bytes
// are zero.
func (m BLEMetadata) Marshal() []byte {
	b := make([]byte, MetadataLength)
	b[0] = m.Version
	b[1] = byte(m.TxPower)
	return b
}

// ParseBLEMetadata decodes a 4-byte metadata record. The reserved bytes are
// ignored.
func ParseBLEMetadata(b []byte) (BLEMetadata, error) {
	if len(b) != MetadataLength {
		return BLEMetadata{}, fmt.Errorf("encrypto: metadata record must be %d bytes, got %d", MetadataLength, len(b))
	}
	return BLEMetadata{Version: b[0], TxPower: int8(b[1])}, nil
}
