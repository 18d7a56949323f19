// Хэширование паролей
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const argon2Prefix = "argon2id$"

// BcryptMaxPasswordBytes — bcrypt не принимает пароли длиннее 72 байт.
const BcryptMaxPasswordBytes = 72

var (
	errEmptyPassword = errors.New("empty password")
	errHashFormat    = errors.New("invalid hash format")
)

type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// Hasher хэширует пароли выбранным алгоритмом: "argon2id" (по умолчанию) или "bcrypt".
type Hasher struct {
	Algorithm  string
	Argon2     Argon2Params
	BcryptCost int
}

// Hash возвращает закодированный хэш пароля.
func (h Hasher) Hash(password string) (string, error) {
	switch strings.ToLower(h.Algorithm) {
	case "bcrypt":
		return HashPasswordBcrypt(password, h.BcryptCost)
	case "", "argon2id":
		return HashPassword(password, h.Argon2)
	default:
		return "", fmt.Errorf("unknown password hasher %q", h.Algorithm)
	}
}

// MaxPasswordBytes возвращает предел длины пароля в байтах для алгоритма, 0 — без предела.
func (h Hasher) MaxPasswordBytes() int {
	if strings.EqualFold(h.Algorithm, "bcrypt") {
		return BcryptMaxPasswordBytes
	}
	return 0
}

// Verify сверяет пароль с хэшем. Формат хэша определяется по префиксу,
// поэтому смена алгоритма в конфиге не ломает вход старым пользователям.
func (h Hasher) Verify(password, encoded string) (bool, error) {
	return VerifyPassword(password, encoded)
}

// HashPassword возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
func HashPassword(password string, p Argon2Params) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errEmptyPassword
	}

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)

	return fmt.Sprintf(
		"%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version,
		p.MemoryKiB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// HashPasswordBcrypt хэширует пароль bcrypt с заданной стоимостью.
func HashPasswordBcrypt(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errEmptyPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// VerifyPassword проверяет пароль против argon2id- или bcrypt-хэша.
// Несовпадение пароля — это (false, nil); ошибка — только битый хэш.
func VerifyPassword(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, argon2Prefix):
		return verifyArgon2(password, encoded)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, errHashFormat
	}
}

func verifyArgon2(password, encoded string) (bool, error) {
	// argon2id $ v=19 $ m=..,t=..,p=.. $ salt $ hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return false, errHashFormat
	}

	var (
		memory, iterations uint32
		threads            uint8
	)
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, errors.New("invalid params format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, errors.New("invalid salt")
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errors.New("invalid hash")
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
