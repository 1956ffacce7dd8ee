package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jefftrojan/afritrade-rev/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Session is the explicit identity object carried on every authenticated
// request, replacing ad hoc key-value persistence on the client. It is
// created on login/registration and dies with the token.
type Session struct {
	UserID uint64
	Role   model.Role
	Name   string
	Email  string
}

type claims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) Issue(s Session) (string, error) {
	now := time.Now()
	c := claims{
		Role:  string(s.Role),
		Name:  s.Name,
		Email: s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(s.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) Parse(tokenStr string) (*Session, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	uid, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role := model.Role(c.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}
	return &Session{UserID: uid, Role: role, Name: c.Name, Email: c.Email}, nil
}
