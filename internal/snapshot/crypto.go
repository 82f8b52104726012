package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Password-based encryption parameters. The envelope layout matches
// exports produced by earlier versions of the application, so both salt
// and nonce travel as plain int arrays inside the meta object.
const (
	kdfIterations = 100000
	keyLen        = 32 // AES-256
	saltLen       = 16
	nonceLen      = 12 // AES-GCM standard nonce
)

type envelopeMeta struct {
	IV   []int `json:"iv"`
	Salt []int `json:"salt"`
}

type envelope struct {
	Encrypted bool         `json:"__encrypted__"`
	Meta      envelopeMeta `json:"meta"`
	Data      string       `json:"data"`
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, keyLen, sha256.New)
}

// encryptEnvelope wraps plaintext JSON in the encrypted envelope. Salt
// and nonce must be freshly random per call; reuse is a security defect.
func encryptEnvelope(plain []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("snapshot: random salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("snapshot: random nonce: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("snapshot: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("snapshot: gcm: %w", err)
	}
	sealed := gcm.Seal(nil, nonce, plain, nil)

	env := envelope{
		Encrypted: true,
		Meta:      envelopeMeta{IV: bytesToInts(nonce), Salt: bytesToInts(salt)},
		Data:      base64.StdEncoding.EncodeToString(sealed),
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode envelope: %w", err)
	}
	return out, nil
}

// decryptEnvelope opens an encrypted envelope. Any failure along the way
// (missing password, bad base64, authentication failure) surfaces as
// ErrDecryption: GCM cannot distinguish a wrong password from tampering.
func decryptEnvelope(data []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password required", ErrDecryption)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed envelope", ErrDecryption)
	}
	nonce, err := intsToBytes(env.Meta.IV, nonceLen)
	if err != nil {
		return nil, fmt.Errorf("%w: bad nonce", ErrDecryption)
	}
	salt, err := intsToBytes(env.Meta.Salt, saltLen)
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt", ErrDecryption)
	}
	sealed, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: bad ciphertext encoding", ErrDecryption)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("%w: cipher", ErrDecryption)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: gcm", ErrDecryption)
	}
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong password or corrupted data", ErrDecryption)
	}
	return plain, nil
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

func intsToBytes(in []int, wantLen int) ([]byte, error) {
	if len(in) != wantLen {
		return nil, fmt.Errorf("expected %d bytes, got %d", wantLen, len(in))
	}
	out := make([]byte, len(in))
	for i, v := range in {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("byte out of range: %d", v)
		}
		out[i] = byte(v)
	}
	return out, nil
}
