package base

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/sha256-simd"
)

/***************************************
 * Fingerprint
 ***************************************/

type Fingerprint [sha256.Size]byte

func (x Fingerprint) Slice() []byte {
	return x[:]
}
// Uuid folds the first 16 bytes into a name-based UUID (version 8, RFC 4122 variant).
func (x Fingerprint) Uuid() (result uuid.UUID) {
	copy(result[:], x[:16])
	result[6] = (result[6] & 0x0f) | 0x80
	result[8] = (result[8] & 0x3f) | 0x80
	return
}
func (x Fingerprint) String() string {
	return hex.EncodeToString(x[:])
}
func (x Fingerprint) ShortString() string {
	return hex.EncodeToString(x[:8])
}
func (x Fingerprint) Valid() bool {
	for _, it := range x {
		if it != 0 {
			return true
		}
	}
	return false
}
func (d *Fingerprint) Set(str string) (err error) {
	var data []byte
	if data, err = hex.DecodeString(str); err == nil {
		if len(data) == sha256.Size {
			copy(d[:], data)
			return nil
		} else {
			err = fmt.Errorf("fingerprint: unexpected string length '%s'", str)
		}
	}
	return err
}
func (x Fingerprint) MarshalText() ([]byte, error) {
	buf := [sha256.Size * 2]byte{}
	hex.Encode(buf[:], x[:])
	return buf[:], nil
}
func (x *Fingerprint) UnmarshalText(data []byte) (err error) {
	n, err := hex.Decode(x[:], data)
	if err == nil && n != sha256.Size {
		err = fmt.Errorf("fingerprint: unexpected string length '%s'", data)
	}
	return err
}

/***************************************
 * Fingerprint helpers
 ***************************************/

func ReaderFingerprint(rd io.Reader, seed Fingerprint) (result Fingerprint, err error) {
	digester := sha256.New()
	digester.Write(seed[:])

	if _, err = TransientIoCopy(digester, rd, TransientPage64KiB); err == nil {
		copy(result[:], digester.Sum(nil))
	}
	return
}

func BytesFingerprint(in []byte) Fingerprint {
	return sha256.Sum256(in)
}

func StringFingerprint(in string) Fingerprint {
	tmp := TransientBuffer.Allocate()
	defer TransientBuffer.Release(tmp)
	tmp.WriteString(in) // avoid allocating a new slice to convert string to []byte
	return sha256.Sum256(tmp.Bytes())
}
