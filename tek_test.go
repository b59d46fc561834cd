package encrypto

import (
	"bytes"
	"testing"
	"time"
)

func TestNewTemporaryExposureKeyValidation(t *testing.T) {
	if _, err := NewTemporaryExposureKey(make([]byte, 15), 0, DefaultRollingPeriod); err == nil {
		t.Error("accepted 15-byte key material")
	}
	if _, err := NewTemporaryExposureKey(make([]byte, 32), 0, DefaultRollingPeriod); err == nil {
		t.Error("accepted 32-byte key material")
	}
	if _, err := NewTemporaryExposureKey(make([]byte, KeyLength), 0, 0); err == nil {
		t.Error("accepted zero rolling period")
	}
	if _, err := NewTemporaryExposureKey(make([]byte, KeyLength), 0, 145); err != nil {
		t.Errorf("rejected rolling period 145: %v", err)
	}
}

func TestTemporaryExposureKeyWindow(t *testing.T) {
	tek, err := NewTemporaryExposureKey(make([]byte, KeyLength), 1440, DefaultRollingPeriod)
	if err != nil {
		t.Fatal(err)
	}
	if got := tek.RollingStartIntervalNumber(); got != 1440 {
		t.Errorf("RollingStartIntervalNumber: got %d, want 1440", got)
	}
	if got := tek.RollingEndIntervalNumber(); got != 1440+DefaultRollingPeriod {
		t.Errorf("RollingEndIntervalNumber: got %d, want %d", got, 1440+DefaultRollingPeriod)
	}
	for enin, want := range map[ENIntervalNumber]bool{
		1439:                            false,
		1440:                            true,
		1440 + DefaultRollingPeriod - 1: true,
		1440 + DefaultRollingPeriod:     false,
	} {
		if got := tek.Valid(enin); got != want {
			t.Errorf("Valid(%d): got %v, want %v", enin, got, want)
		}
	}
}

func TestGenerateTemporaryExposureKey(t *testing.T) {
	a, err := GenerateTemporaryExposureKey(1440, DefaultRollingPeriod)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateTemporaryExposureKey(1440, DefaultRollingPeriod)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.KeyData(), b.KeyData()) {
		t.Error("two generated keys share key material")
	}
}

func TestKeyDataReturnsCopy(t *testing.T) {
	tek, err := GenerateTemporaryExposureKey(1440, DefaultRollingPeriod)
	if err != nil {
		t.Fatal(err)
	}
	first := tek.KeyData()
	first[0] ^= 0xff
	if bytes.Equal(first, tek.KeyData()) {
		t.Error("mutating the returned key data changed the key")
	}
}

func TestNewENIntervalNumber(t *testing.T) {
	if got := NewENIntervalNumber(time.Unix(6000, 0)); got != 10 {
		t.Errorf("NewENIntervalNumber: got %d, want 10", got)
	}
	if got := NewENIntervalNumber(time.Unix(6599, 0)); got != 10 {
		t.Errorf("NewENIntervalNumber: got %d, want 10", got)
	}
}

func TestNewRollingStartNumber(t *testing.T) {
	// Interval 1000 rounds down to 864, the nearest multiple of 144.
	got := NewRollingStartNumber(time.Unix(1000*600, 0), DefaultRollingPeriod)
	if got != 864 {
		t.Errorf("NewRollingStartNumber: got %d, want 864", got)
	}
	if got%DefaultRollingPeriod != 0 {
		t.Errorf("rolling start %d is not aligned", got)
	}
}
