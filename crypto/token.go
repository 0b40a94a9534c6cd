package crypto

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
	ErrUnknownIssuer  = errors.New("unknown token issuer")
)

// TokenConfig configures the token service. All fields come from the
// runtime configuration; no security material is compiled in.
type TokenConfig struct {
	Issuer string
	Secret []byte
	TTL    time.Duration
}

// Claims carried by every issued token. UserID is a stringified
// integer on the wire.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// VerifiedToken is proof that a token passed signature, issuer, and
// expiry checks. Identity claims are only reachable through it, so a
// handler cannot trust an unverified token by accident.
type VerifiedToken struct {
	userID    int64
	username  string
	expiresAt time.Time
}

func (t *VerifiedToken) UserID() int64        { return t.userID }
func (t *VerifiedToken) Username() string     { return t.username }
func (t *VerifiedToken) ExpiresAt() time.Time { return t.expiresAt }

// TokenService issues and verifies self-contained HS256-signed bearer
// tokens. Tokens carry no server-side state; any worker holding the
// shared secret can validate them. The secret is immutable after
// construction and needs no locking.
type TokenService struct {
	config TokenConfig
}

func NewTokenService(config TokenConfig) *TokenService {
	if config.TTL == 0 {
		config.TTL = time.Hour
	}
	return &TokenService{config: config}
}

// Issue signs a claim set for the subject, expiring TTL from now.
func (s *TokenService) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		},
		UserID:   strconv.FormatInt(userID, 10),
		Username: username,
	})

	return token.SignedString(s.config.Secret)
}

// Verify parses the token and checks signature, issuer, and expiry
// with no leeway. The returned error distinguishes failure modes for
// logging and tests; boundaries collapse all of them to a uniform
// rejection so verification internals never leak to clients.
func (s *TokenService) Verify(tokenString string) (*VerifiedToken, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.config.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrUnknownIssuer
		default:
			return nil, ErrMalformedToken
		}
	}
	if !token.Valid {
		return nil, ErrBadSignature
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, ErrMalformedToken
	}

	return &VerifiedToken{
		userID:    userID,
		username:  claims.Username,
		expiresAt: claims.ExpiresAt.Time,
	}, nil
}

// UnverifiedUserID parses the user_id claim without checking the
// signature. UNTRUSTED: suitable for log correlation only, never for
// authorization decisions. Returns -1 on any parse failure.
func (s *TokenService) UnverifiedUserID(tokenString string) int64 {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return -1
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return -1
	}
	return userID
}

// UnverifiedUsername parses the username claim without checking the
// signature. UNTRUSTED: returns "" on any parse failure.
func (s *TokenService) UnverifiedUsername(tokenString string) string {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return ""
	}
	return claims.Username
}

func parseUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
