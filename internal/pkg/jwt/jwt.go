package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Tokens are revoked by their jti claim, so logout works from parsed
// claims without carrying the raw token string around.
type Service interface {
	GenerateAccessToken(userID string, username string, role user.Role, mustChangePassword bool) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string)
	IsTokenRevoked(tokenID string) bool
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, username string, role user.Role, mustChangePassword bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"jti":                  uuid.NewString(),
		"user_id":              userID,
		"username":             username,
		"role":                 string(role),
		"must_change_password": mustChangePassword,
		"type":                 "access",
		"exp":                  expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(tokenID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[tokenID] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}
