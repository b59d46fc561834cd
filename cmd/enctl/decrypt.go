package main

import (
	"encoding/base64"
	"fmt"

	"github.com/alecthomas/kong"
	encrypto "github.com/proximitykit/encrypto"
)

type decryptCmd struct {
	Key string `arg:"" help:"Base64 temporary exposure key."`
	RPI string `arg:"" help:"Base64 identifier the metadata is bound to."`
	AEM string `arg:"" help:"Base64 associated encrypted metadata."`
}

func (cmd *decryptCmd) Run(_ *kong.Context) error {
	material, err := decodeKeyMaterial(cmd.Key)
	if err != nil {
		return err
	}
	rpi, err := decodeIdentifier(cmd.RPI)
	if err != nil {
		return err
	}
	aem, err := base64.StdEncoding.DecodeString(cmd.AEM)
	if err != nil {
		return fmt.Errorf("invalid base64 metadata: %w", err)
	}
	cfg := encrypto.DefaultConfig()

	aemk, err := encrypto.GenerateAEMKey(material, cfg.AEMKInfo, cfg.KeyLength)
	if err != nil {
		return err
	}
	plaintext, err := encrypto.EncryptOrDecrypt(aemk, rpi, aem)
	if err != nil {
		return err
	}
	metadata, err := encrypto.ParseBLEMetadata(plaintext)
	if err != nil {
		return err
	}

	fmt.Printf("version:  0x%02x\n", metadata.Version)
	fmt.Printf("tx power: %d dBm\n", metadata.TxPower)
	return nil
}
