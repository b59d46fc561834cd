package encrypto

import (
	"bytes"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func randomIdentifier(t *testing.T) RollingProximityIdentifier {
	t.Helper()
	var rpi RollingProximityIdentifier
	if _, err := rand.Read(rpi[:]); err != nil {
		t.Fatal(err)
	}
	return rpi
}

func TestMetadataRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		cipher := NewMetadataCipher(testKey(t, 1440, DefaultRollingPeriod), DefaultConfig())
		rpi := randomIdentifier(t)
		metadata := make([]byte, MetadataLength)
		if _, err := rand.Read(metadata); err != nil {
			t.Fatal(err)
		}

		aem, err := cipher.Encrypt(rpi, metadata)
		if err != nil {
			t.Fatal(err)
		}
		got, err := cipher.Decrypt(rpi, aem)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(metadata, got) {
			t.Fatalf("round trip: got %x, want %x", got, metadata)
		}
	}
}

func TestDecryptWrongIdentifierYieldsGarbage(t *testing.T) {
	cipher := NewMetadataCipher(testKey(t, 1440, DefaultRollingPeriod), DefaultConfig())
	metadata := []byte{0x40, 0x08, 0x00, 0x00}

	aem, err := cipher.Encrypt(randomIdentifier(t), metadata)
	if err != nil {
		t.Fatal(err)
	}

	// A different identifier decrypts without error but yields wrong bytes.
	got, err := cipher.Decrypt(randomIdentifier(t), aem)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(metadata, got) {
		t.Error("decryption under the wrong identifier recovered the plaintext")
	}
}

func TestMetadataLengthValidation(t *testing.T) {
	cipher := NewMetadataCipher(testKey(t, 1440, DefaultRollingPeriod), DefaultConfig())
	rpi := randomIdentifier(t)

	for _, n := range []int{0, 3, 5, 16} {
		if _, err := cipher.Encrypt(rpi, make([]byte, n)); err == nil {
			t.Errorf("Encrypt accepted %d-byte metadata", n)
		}
		if _, err := cipher.Decrypt(rpi, make([]byte, n)); err == nil {
			t.Errorf("Decrypt accepted %d-byte ciphertext", n)
		}
	}
}

func TestMetadataCipherConcurrent(t *testing.T) {
	cipher := NewMetadataCipher(testKey(t, 1440, DefaultRollingPeriod), DefaultConfig())
	rpi := randomIdentifier(t)
	metadata := []byte{0x40, 0x08, 0x00, 0x00}

	want, err := cipher.Encrypt(rpi, metadata)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			aem, err := cipher.Encrypt(rpi, metadata)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = aem
		}(i)
	}
	wg.Wait()

	for i, aem := range results {
		if !bytes.Equal(want, aem) {
			t.Errorf("goroutine %d: got %x, want %x", i, aem, want)
		}
	}
}

func TestEncryptOrDecryptMatchesCipher(t *testing.T) {
	tek := testKey(t, 1440, DefaultRollingPeriod)
	cipher := NewMetadataCipher(tek, DefaultConfig())
	rpi := randomIdentifier(t)
	metadata := []byte{0x40, 0x08, 0x00, 0x00}

	aemk, err := GenerateAEMKey(tek.KeyData(), DefaultAEMKInfo, KeyLength)
	if err != nil {
		t.Fatal(err)
	}

	fromCipher, err := cipher.Encrypt(rpi, metadata)
	if err != nil {
		t.Fatal(err)
	}
	fromKey, err := EncryptOrDecrypt(aemk, rpi, metadata)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fromCipher, fromKey); diff != "" {
		t.Errorf("transform mismatch (-cipher +key):\n%s", diff)
	}
}

func TestBLEMetadataMarshalParse(t *testing.T) {
	m := BLEMetadata{Version: 0x40, TxPower: -23}
	b := m.Marshal()
	if len(b) != MetadataLength {
		t.Fatalf("marshalled record is %d bytes, want %d", len(b), MetadataLength)
	}

	got, err := ParseBLEMetadata(b)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseBLEMetadata([]byte{0x40}); err == nil {
		t.Error("ParseBLEMetadata accepted a short record")
	}
}
