package main

import (
	"encoding/base64"
	"fmt"

	"github.com/alecthomas/kong"
	encrypto "github.com/proximitykit/encrypto"
)

type deriveCmd struct {
	Key string `arg:"" help:"Base64 temporary exposure key."`
}

func (cmd *deriveCmd) Run(_ *kong.Context) error {
	material, err := decodeKeyMaterial(cmd.Key)
	if err != nil {
		return err
	}
	cfg := encrypto.DefaultConfig()

	rpik, err := encrypto.GenerateRPIKey(material, cfg.RPIKInfo, cfg.KeyLength)
	if err != nil {
		return err
	}
	aemk, err := encrypto.GenerateAEMKey(material, cfg.AEMKInfo, cfg.KeyLength)
	if err != nil {
		return err
	}

	fmt.Printf("rpik: %s\n", base64.StdEncoding.EncodeToString(rpik))
	fmt.Printf("aemk: %s\n", base64.StdEncoding.EncodeToString(aemk))
	return nil
}
