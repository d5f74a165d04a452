package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	signed, err := GenerateJWT(42, "scorer", secret, 5)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(signed, secret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "scorer" || claims.Issuer != Issuer {
		t.Errorf("claims = %+v", claims)
	}
}

func sign(t *testing.T, claims *Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestValidateRejects(t *testing.T) {
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"empty token", "", secret},
		{"empty secret", sign(t, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte(secret)), ""},
		{"wrong secret", sign(t, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte("other")), secret},
		{"expired", sign(t, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past}}, jwt.SigningMethodHS256, []byte(secret)), secret},
		{"no expiry", sign(t, &Claims{UserID: 1}, jwt.SigningMethodHS256, []byte(secret)), secret},
		{"missing user", sign(t, &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte(secret)), secret},
		{"unsigned", sign(t, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType), secret},
		{"garbage", "not.a.token", secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.token, tt.secret); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
