package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/crypto/argon2"
)

// MaxPasswordLength is the ceiling on plaintext password size in bytes.
const MaxPasswordLength = 1024

var (
	ErrVaultNotInitialized = errors.New("password vault not initialized")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooLong     = errors.New("password too long")
	ErrHashingFailure      = errors.New("password hashing failed")
)

// Argon2Params are the cost parameters of the argon2id KDF.
type Argon2Params struct {
	Memory      uint32 // Memory cost in KiB
	Iterations  uint32 // Number of iterations (time cost)
	Parallelism uint8  // Number of parallel threads
	SaltLength  uint32 // Length of random salt. Ignored during Verify()
	KeyLength   uint32 // Length of generated key
}

// InteractiveParams returns a cost profile bounded so a web request
// completes in sub-second time while remaining resistant to offline
// brute force.
//
// @ref https://cheatsheetseries.owasp.org/cheatsheets/Password_Storage_Cheat_Sheet.html
func InteractiveParams() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Vault performs one-way password hashing and verification. It must
// be initialized once before use; Initialize is idempotent and safe
// to call from multiple goroutines. Every operation serializes on a
// single internal lock.
type Vault struct {
	params      Argon2Params
	mu          sync.Mutex
	initialized bool
}

func NewVault(params Argon2Params) *Vault {
	return &Vault{params: params}
}

// Initialize validates the cost profile and marks the vault ready.
// Only the first caller performs the work. A failure here is fatal to
// the process; the vault must never serve requests uninitialized.
func (v *Vault) Initialize() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.initialized {
		return nil
	}

	if v.params.Memory == 0 || v.params.Iterations == 0 || v.params.Parallelism == 0 {
		return fmt.Errorf("invalid argon2 cost profile: m=%d,t=%d,p=%d",
			v.params.Memory, v.params.Iterations, v.params.Parallelism)
	}
	if v.params.SaltLength == 0 || v.params.KeyLength == 0 {
		return fmt.Errorf("invalid argon2 output lengths: salt=%d,key=%d",
			v.params.SaltLength, v.params.KeyLength)
	}

	v.initialized = true
	return nil
}

// Hash derives an argon2id digest of the password with a fresh random
// salt and encodes algorithm, cost parameters, salt, and digest into a
// single self-describing string. No separate salt storage is needed.
func (v *Vault) Hash(password string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.initialized {
		return "", ErrVaultNotInitialized
	}
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	salt := make([]byte, v.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		v.params.Iterations,
		v.params.Memory,
		v.params.Parallelism,
		v.params.KeyLength,
	)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		v.params.Memory,
		v.params.Iterations,
		v.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// Verify recomputes the digest using the parameters embedded in the
// encoded record and compares in constant time. Malformed or empty
// inputs verify as false rather than erroring; the only error case is
// an uninitialized vault.
func (v *Vault) Verify(encodedHash, password string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.initialized {
		return false, ErrVaultNotInitialized
	}
	if encodedHash == "" || password == "" {
		return false, nil
	}

	params, salt, hash, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false, nil
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)

	return subtle.ConstantTimeCompare(hash, computed) == 1, nil
}

// IsStrong reports whether the password is at least 8 characters long
// and draws on at least three of: uppercase, lowercase, digits,
// punctuation. Advisory only; callers decide whether to block or warn.
func (v *Vault) IsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasPunct bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasPunct = true
		}
	}

	classes := 0
	for _, has := range []bool{hasUpper, hasLower, hasDigit, hasPunct} {
		if has {
			classes++
		}
	}
	return classes >= 3
}

func decodeArgon2Hash(encodedHash string) (*Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, errors.New("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, errors.New("unsupported algorithm")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}

	params := &Argon2Params{}
	paramParts := strings.Split(parts[3], ",")
	if len(paramParts) != 3 {
		return nil, nil, nil, errors.New("invalid parameters format")
	}

	if _, err := fmt.Sscanf(paramParts[0], "m=%d", &params.Memory); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid memory parameter: %w", err)
	}

	if _, err := fmt.Sscanf(paramParts[1], "t=%d", &params.Iterations); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid iterations parameter: %w", err)
	}

	var p int
	if _, err := fmt.Sscanf(paramParts[2], "p=%d", &p); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parallelism parameter: %w", err)
	}
	params.Parallelism = uint8(p)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}

	params.KeyLength = uint32(len(hash))

	// Degenerate parameters panic inside argon2; a record carrying them
	// is corrupt, not a candidate for key derivation.
	if params.Iterations == 0 || params.Parallelism == 0 {
		return nil, nil, nil, errors.New("degenerate cost parameters")
	}
	if params.Memory < 8*uint32(params.Parallelism) {
		return nil, nil, nil, errors.New("memory below argon2 minimum")
	}
	if len(salt) == 0 || params.KeyLength == 0 {
		return nil, nil, nil, errors.New("empty salt or digest")
	}

	return params, salt, hash, nil
}
