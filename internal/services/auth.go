package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// TokenService signs and verifies session tokens. A token is valid for the
// fixed session TTL and is never refreshed; after expiry the visitor simply
// logs in again.
type TokenService struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
}

func (t TokenService) HashPassword(raw string) (string, error) {
	return hashArgon2id(raw)
}

// VerifyPassword accepts argon2id hashes and legacy bcrypt hashes, matching
// whatever the user row carries.
func (t TokenService) VerifyPassword(raw, hashed string) bool {
	if strings.HasPrefix(hashed, "$argon2") {
		return verifyArgon2id(raw, hashed)
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// CreateSessionToken issues a token whose iat doubles as the session login
// time; expiry is iat plus the session TTL.
func (t TokenService) CreateSessionToken(user models.User, now time.Time) (string, int64, error) {
	now = now.UTC()
	exp := now.Add(t.SessionTTL)
	claims := jwt.MapClaims{
		"iss":   t.Issuer,
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"name":  user.Name,
		"type":  user.Type,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

// ParseSession validates a token and rebuilds the session value from its
// claims. The login-time check is the caller's job via Session.Expired.
func (t TokenService) ParseSession(tokenStr string) (session.Session, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer))
	if err != nil || !token.Valid {
		return session.Session{}, errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return session.Session{}, errors.New("invalid token subject")
	}
	iat, _ := claims["iat"].(float64)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	userType, _ := claims["type"].(string)
	return session.Session{
		UserID:    userID,
		Name:      name,
		Email:     email,
		Type:      userType,
		LoginTime: time.Unix(int64(iat), 0).UTC(),
	}, nil
}

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  int
	keyLength   int
}

func hashArgon2id(raw string) (string, error) {
	params := argon2Params{
		memory:      65536,
		iterations:  3,
		parallelism: 1,
		saltLength:  16,
		keyLength:   32,
	}
	salt := make([]byte, params.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(raw), salt, params.iterations, params.memory, params.parallelism, uint32(params.keyLength))
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Key := base64.RawStdEncoding.EncodeToString(key)
	return "$argon2id$v=19$m=" + strconv.FormatUint(uint64(params.memory), 10) +
		",t=" + strconv.FormatUint(uint64(params.iterations), 10) +
		",p=" + strconv.FormatUint(uint64(params.parallelism), 10) +
		"$" + b64Salt + "$" + b64Key, nil
}

func verifyArgon2id(raw, encoded string) bool {
	params, salt, hash, err := decodeArgon2id(encoded)
	if err != nil {
		return false
	}
	key := argon2.IDKey([]byte(raw), salt, params.iterations, params.memory, params.parallelism, uint32(params.keyLength))
	return subtleCompare(hash, key)
}

func decodeArgon2id(encoded string) (argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return argon2Params{}, nil, nil, errors.New("invalid hash format")
	}
	var params argon2Params
	if !strings.HasPrefix(parts[1], "argon2") {
		return argon2Params{}, nil, nil, errors.New("invalid hash type")
	}
	paramValues := strings.Split(parts[3], ",")
	for _, kv := range paramValues {
		pair := strings.SplitN(kv, "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "m":
			value, _ := strconv.ParseUint(pair[1], 10, 32)
			params.memory = uint32(value)
		case "t":
			value, _ := strconv.ParseUint(pair[1], 10, 32)
			params.iterations = uint32(value)
		case "p":
			value, _ := strconv.ParseUint(pair[1], 10, 8)
			params.parallelism = uint8(value)
		}
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	params.saltLength = len(salt)
	params.keyLength = len(hash)
	return params, salt, hash, nil
}

func subtleCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
