package main

import (
	"encoding/base64"
	"log"
	"time"

	"github.com/alecthomas/kong"
	encrypto "github.com/proximitykit/encrypto"
)

type matchCmd struct {
	RPI       string   `arg:"" help:"Base64 scanned identifier."`
	Keys      []string `arg:"" repeated:"" help:"Diagnosis keys as base64key:rollingStart:rollingPeriod."`
	AEM       string   `help:"Base64 associated encrypted metadata to decrypt on a match."`
	ScannedAt int64    `help:"Unix timestamp of the scan; narrows candidates to the clock-drift window."`
}

func (cmd *matchCmd) Run(_ *kong.Context) error {
	scanned, err := decodeIdentifier(cmd.RPI)
	if err != nil {
		return err
	}
	var aem []byte
	if cmd.AEM != "" {
		if aem, err = base64.StdEncoding.DecodeString(cmd.AEM); err != nil {
			return err
		}
	}
	cfg := encrypto.DefaultConfig()

	// Each diagnosis key is a candidate: re-derive its identifiers over the
	// rolling window and compare against the scanned value. On a match the
	// same key decrypts the accompanying metadata.
	for _, spec := range cmd.Keys {
		tek, err := decodeDiagnosisKey(spec)
		if err != nil {
			return err
		}
		gen, err := encrypto.NewIdentifierGenerator(tek, nil, cfg)
		if err != nil {
			return err
		}

		lo, hi := candidateWindow(tek, cmd.ScannedAt, cfg.MatchingClockDrift)
		var matched bool
		for enin := lo; enin < hi; enin++ {
			rpi, err := gen.GenerateID(enin)
			if err != nil {
				return err
			}
			if rpi != scanned {
				continue
			}
			matched = true
			log.Printf("MATCH: key %s at interval %d", spec, enin)
			if aem != nil {
				cipher := encrypto.NewMetadataCipher(tek, cfg)
				plaintext, err := cipher.Decrypt(rpi, aem)
				if err != nil {
					return err
				}
				metadata, err := encrypto.ParseBLEMetadata(plaintext)
				if err != nil {
					return err
				}
				log.Printf("metadata: version 0x%02x, tx power %d dBm", metadata.Version, metadata.TxPower)
			}
			break
		}
		if !matched {
			log.Printf("no match: key %s", spec)
		}
	}
	return nil
}

// candidateWindow intersects the key's validity window with the clock-drift
// window around the scan time, when one was given.
func candidateWindow(tek encrypto.TemporaryExposureKey, scannedAt int64, drift uint32) (lo, hi encrypto.ENIntervalNumber) {
	lo = tek.RollingStartIntervalNumber()
	hi = tek.RollingEndIntervalNumber()
	if scannedAt == 0 {
		return lo, hi
	}
	center := encrypto.NewENIntervalNumber(time.Unix(scannedAt, 0))
	if min := center - encrypto.ENIntervalNumber(drift); center > encrypto.ENIntervalNumber(drift) && min > lo {
		lo = min
	}
	if max := center + encrypto.ENIntervalNumber(drift) + 1; max < hi {
		hi = max
	}
	return lo, hi
}
