package main

import (
	"encoding/base64"
	"fmt"

	"github.com/alecthomas/kong"
	encrypto "github.com/proximitykit/encrypto"
)

type encryptCmd struct {
	Key     string `arg:"" help:"Base64 temporary exposure key."`
	RPI     string `arg:"" help:"Base64 identifier the metadata is bound to."`
	Version uint8  `default:"64" help:"Protocol version byte."`
	TxPower int8   `default:"0" help:"Calibrated transmit power in dBm."`
}

func (cmd *encryptCmd) Run(_ *kong.Context) error {
	material, err := decodeKeyMaterial(cmd.Key)
	if err != nil {
		return err
	}
	rpi, err := decodeIdentifier(cmd.RPI)
	if err != nil {
		return err
	}
	cfg := encrypto.DefaultConfig()

	aemk, err := encrypto.GenerateAEMKey(material, cfg.AEMKInfo, cfg.KeyLength)
	if err != nil {
		return err
	}
	metadata := encrypto.BLEMetadata{Version: cmd.Version, TxPower: cmd.TxPower}
	aem, err := encrypto.EncryptOrDecrypt(aemk, rpi, metadata.Marshal())
	if err != nil {
		return err
	}

	fmt.Printf("aem: %s\n", base64.StdEncoding.EncodeToString(aem))
	return nil
}
