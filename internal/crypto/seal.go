package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"quickchat/internal/util/json"
)

const (
	// The current supported version of the sealed blob format.
	sealFormatVersion = 1
	saltSize          = 16

	// Upper bounds on the scrypt cost a blob may ask for. Seal uses
	// N=2^15, r=8, p=1.
	maxScryptN = 1 << 20
	maxScryptR = 16
	maxScryptP = 4
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// sealed value has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted value")

// ErrUnsupportedParams is returned when a sealed value names scrypt costs
// outside the accepted range.
var ErrUnsupportedParams = errors.New("unsupported scrypt parameters")

// sealed is the JSON structure holding the ciphertext and KDF parameters.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

func checkScryptParams(N, r, p int) error {
	if N <= 1 || N > maxScryptN || N&(N-1) != 0 {
		return fmt.Errorf("%w: N=%d", ErrUnsupportedParams, N)
	}
	if r < 1 || r > maxScryptR || p < 1 || p > maxScryptP {
		return fmt.Errorf("%w: r=%d p=%d", ErrUnsupportedParams, r, p)
	}
	return nil
}

// Seal encrypts plaintext under a key derived from passphrase and returns a
// self-describing JSON blob.
func Seal(passphrase string, plaintext []byte) ([]byte, error) {
	N, r, p := scryptParamsDefault()

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, plaintext, salt)

	return json.Marshal(sealed{
		V:      sealFormatVersion,
		Salt:   salt,
		N:      N,
		R:      r,
		P:      p,
		Nonce:  nonce,
		Cipher: ct,
	})
}

// Open reverses Seal.
func Open(passphrase string, blob []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, err
	}
	if s.V > sealFormatVersion {
		return nil, fmt.Errorf("unsupported sealed format version %d", s.V)
	}
	if err := checkScryptParams(s.N, s.R, s.P); err != nil {
		return nil, err
	}

	key, err := scrypt.Key([]byte(passphrase), s.Salt, s.N, s.R, s.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(s.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, s.Nonce, s.Cipher, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
