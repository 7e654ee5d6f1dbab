package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// The two credential audiences. Staff tokens govern the admin console,
// client tokens govern the storefront checkout flow; the middleware
// for one audience rejects tokens of the other, so both sessions can
// coexist in the same browser without collision.
const (
	AudienceStaff  = "staff"
	AudienceClient = "client"
)

const TTL = 24 * time.Hour

var (
	ErrInvalid       = errors.New("invalid token")
	ErrWrongAudience = errors.New("wrong token audience")
)

type Claims struct {
	UserID   uint
	TenantID uint
	Role     string
	Audience string
	JTI      string
	Expiry   time.Time
}

func Issue(secret string, audience string, userID, tenantID uint, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      float64(userID),
		"tenantId": float64(tenantID),
		"role":     role,
		"aud":      audience,
		"jti":      uuid.NewString(),
		"exp":      now.Add(TTL).Unix(),
		"iat":      now.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// Parse validates the signature and expiry and checks the token was
// issued for the expected audience.
func Parse(secret, tokenString, audience string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	sub, ok1 := mc["sub"].(float64)
	tenantID, ok2 := mc["tenantId"].(float64)
	aud, _ := mc["aud"].(string)
	role, _ := mc["role"].(string)
	jti, _ := mc["jti"].(string)
	exp, _ := mc["exp"].(float64)
	if !ok1 || !ok2 {
		return nil, ErrInvalid
	}

	if aud != audience {
		return nil, ErrWrongAudience
	}

	return &Claims{
		UserID:   uint(sub),
		TenantID: uint(tenantID),
		Role:     role,
		Audience: aud,
		JTI:      jti,
		Expiry:   time.Unix(int64(exp), 0),
	}, nil
}
