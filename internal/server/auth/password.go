package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into salted one-way hashes and checks them back.
// Every Hash call uses a fresh random salt, so equal passwords never share
// a hash.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// NewHasher returns the hasher for scheme ("bcrypt" or "argon2id") with
// default cost parameters.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "bcrypt":
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	case "argon2id":
		return NewArgon2Hasher(DefaultArgon2Params), nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", scheme)
}

// bcrypt ignores everything past 72 bytes. Longer passwords are fed to it as
// base64(sha256(password)) so every byte still counts.
const maxBcryptPasswordLen = 72

func bcryptInput(password string) []byte {
	if len(password) <= maxBcryptPasswordLen {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return verifyPassword(password, hash)
}

// Argon2Params are the argon2id cost parameters. Memory is in KiB.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

var DefaultArgon2Params = Argon2Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 4,
	SaltLen: 16,
	KeyLen:  32,
}

// Argon2Hasher produces PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: p}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	p := h.params

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func (h *Argon2Hasher) Verify(password, hash string) bool {
	return verifyPassword(password, hash)
}

// verifyPassword checks password against a bcrypt or argon2id hash, whichever
// the stored string is. Anything unrecognised or malformed is a mismatch.
func verifyPassword(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		ok, err := verifyArgon2(password, hash)
		return err == nil && ok
	case strings.HasPrefix(hash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
	}
	return false
}

var errMalformedHash = errors.New("malformed password hash")

// Upper bounds for cost parameters read back from a stored hash.
const (
	maxArgon2Memory  = 1024 * 1024 // KiB
	maxArgon2Time    = 16
	maxArgon2Threads = 64
	maxArgon2KeyLen  = 128
)

func verifyArgon2(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errMalformedHash
	}
	if memory == 0 || time == 0 || threads == 0 ||
		memory > maxArgon2Memory || time > maxArgon2Time || threads > maxArgon2Threads {
		return false, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errMalformedHash
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 || len(expected) > maxArgon2KeyLen {
		return false, errMalformedHash
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
