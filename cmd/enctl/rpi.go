package main

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	encrypto "github.com/proximitykit/encrypto"
)

type rpiCmd struct {
	Key           string `arg:"" help:"Base64 temporary exposure key."`
	RollingStart  uint32 `arg:"" help:"First interval number the key is valid for."`
	RollingPeriod uint32 `default:"144" help:"Number of 10 minute intervals the key remains valid."`
	At            int64  `help:"Unix timestamp; generate only the identifier for its interval."`
}

func (cmd *rpiCmd) Run(_ *kong.Context) error {
	material, err := decodeKeyMaterial(cmd.Key)
	if err != nil {
		return err
	}
	tek, err := encrypto.NewTemporaryExposureKey(material, encrypto.ENIntervalNumber(cmd.RollingStart), cmd.RollingPeriod)
	if err != nil {
		return err
	}
	cfg := encrypto.DefaultConfig()
	gen, err := encrypto.NewIdentifierGenerator(tek, nil, cfg)
	if err != nil {
		return err
	}

	if cmd.At != 0 {
		enin := encrypto.NewENIntervalNumber(time.Unix(cmd.At, 0))
		rpi, err := gen.GenerateID(enin)
		if err != nil {
			return err
		}
		fmt.Printf("%d %s\n", enin, base64.StdEncoding.EncodeToString(rpi[:]))
		return nil
	}

	scratch := make([]byte, int(tek.RollingPeriod())*encrypto.BlockSize)
	ids, err := gen.GenerateIDs(scratch)
	if err != nil {
		return err
	}
	for i, rpi := range ids {
		enin := tek.RollingStartIntervalNumber() + encrypto.ENIntervalNumber(i)
		fmt.Printf("%d %s\n", enin, base64.StdEncoding.EncodeToString(rpi[:]))
	}
	return nil
}
