package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("jwt: secret vacío")
	ErrInvalidToken  = errors.New("jwt: token inválido")
)

// Claims claims estándar más el actor. El login vive fuera de este servicio: aquí solo se
// firma (tests, herramientas) y se verifica.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "admin" | "bodeguero" | cualquier otro = solo lectura
}

// Actor quien ejecuta la petición; termina en movimientos, auditoría y alertas.
type Actor struct {
	UserID string
	Role   string
}

// Generate firma un token HS256 para userID con el rol indicado.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verifier valida tokens con un secreto fijo y, si issuer no está vacío, exige ese emisor.
type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

// NewVerifier construye el verificador.
func NewVerifier(secret, issuer string) *Verifier {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{secret: []byte(secret), opts: opts}
}

// Verify devuelve el actor del token. Un token sin user_id usa el subject.
func (v *Verifier) Verify(tokenString string) (Actor, error) {
	if len(v.secret) == 0 {
		return Actor{}, ErrMissingSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Actor{}, ErrInvalidToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return Actor{}, fmt.Errorf("%w: sin usuario", ErrInvalidToken)
	}
	return Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

// Parse atajo sin validación de emisor.
func Parse(secret, tokenString string) (userID, role string, err error) {
	a, err := NewVerifier(secret, "").Verify(tokenString)
	return a.UserID, a.Role, err
}
