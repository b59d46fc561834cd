package main

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	encrypto "github.com/proximitykit/encrypto"
)

type cli struct {
	Keygen  keygenCmd  `cmd:"" help:"Generate a new temporary exposure key."`
	Derive  deriveCmd  `cmd:"" help:"Derive the identifier and metadata keys for a temporary exposure key."`
	RPI     rpiCmd     `cmd:"" help:"Generate rolling proximity identifiers for a temporary exposure key."`
	Encrypt encryptCmd `cmd:"" help:"Encrypt a metadata record for an identifier."`
	Decrypt decryptCmd `cmd:"" help:"Decrypt associated encrypted metadata."`
	Match   matchCmd   `cmd:"" help:"Match a scanned identifier against diagnosis keys."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func decodeKeyMaterial(s string) ([]byte, error) {
	material, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 key material: %w", err)
	}
	return material, nil
}

func decodeIdentifier(s string) (encrypto.RollingProximityIdentifier, error) {
	var rpi encrypto.RollingProximityIdentifier
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return rpi, fmt.Errorf("invalid base64 identifier: %w", err)
	}
	if len(b) != encrypto.BlockSize {
		return rpi, fmt.Errorf("identifier must be %d bytes, got %d", encrypto.BlockSize, len(b))
	}
	copy(rpi[:], b)
	return rpi, nil
}

// decodeDiagnosisKey parses a "base64key:rollingStart:rollingPeriod" triple,
// the form diagnosis keys travel in on the command line.
func decodeDiagnosisKey(s string) (encrypto.TemporaryExposureKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return encrypto.TemporaryExposureKey{}, fmt.Errorf("diagnosis key %q: want base64key:rollingStart:rollingPeriod", s)
	}
	material, err := decodeKeyMaterial(parts[0])
	if err != nil {
		return encrypto.TemporaryExposureKey{}, err
	}
	start, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return encrypto.TemporaryExposureKey{}, fmt.Errorf("invalid rolling start %q: %w", parts[1], err)
	}
	period, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return encrypto.TemporaryExposureKey{}, fmt.Errorf("invalid rolling period %q: %w", parts[2], err)
	}
	return encrypto.NewTemporaryExposureKey(material, encrypto.ENIntervalNumber(start), uint32(period))
}
