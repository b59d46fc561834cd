package main

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	encrypto "github.com/proximitykit/encrypto"
)

type keygenCmd struct {
	RollingPeriod uint32 `default:"144" help:"Number of 10 minute intervals the key remains valid."`
}

func (cmd *keygenCmd) Run(_ *kong.Context) error {
	start := encrypto.NewRollingStartNumber(time.Now(), cmd.RollingPeriod)
	tek, err := encrypto.GenerateTemporaryExposureKey(start, cmd.RollingPeriod)
	if err != nil {
		return err
	}

	fmt.Printf("key:            %s\n", base64.StdEncoding.EncodeToString(tek.KeyData()))
	fmt.Printf("rolling start:  %d\n", tek.RollingStartIntervalNumber())
	fmt.Printf("rolling period: %d\n", tek.RollingPeriod())
	return nil
}
