package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionSubject    = "session"
	activationSubject = "activation"
)

type UserClaims struct {
	jwt.RegisteredClaims
	ID int64
}

// ActivationClaims carry a pending registration until the email is confirmed with the otp.
// Only hashes are stored, the token payload is readable by the client.
type ActivationClaims struct {
	jwt.RegisteredClaims
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	OTPHash      string `json:"otp_hash"`
}

func GenerateUserJWT(id int64, expire time.Duration, key []byte) (string, error) {
	userClaims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		ID: id,
	}
	token, err := generateJWT(userClaims, key)
	if err != nil {
		return "", fmt.Errorf("generating user jwt token: %s", err.Error())
	}
	return token, nil
}

func ValidateUserJWT(tokenString string, key []byte) (*jwt.Token, error) {
	token, err := validateJWT(tokenString, new(UserClaims), key, sessionSubject)
	if err != nil {
		return nil, fmt.Errorf("validating user jwt token: %w", err)
	}

	if _, ok := token.Claims.(*UserClaims); !ok {
		return nil, ErrInvalidClaims
	}
	return token, nil
}

func GenerateActivationJWT(claims ActivationClaims, expire time.Duration, key []byte) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   activationSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
	}
	token, err := generateJWT(claims, key)
	if err != nil {
		return "", fmt.Errorf("generating activation jwt token: %s", err.Error())
	}
	return token, nil
}

func ValidateActivationJWT(tokenString string, key []byte) (*ActivationClaims, error) {
	token, err := validateJWT(tokenString, new(ActivationClaims), key, activationSubject)
	if err != nil {
		return nil, fmt.Errorf("validating activation jwt token: %w", err)
	}
	claims, ok := token.Claims.(*ActivationClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %s", err.Error())
	}

	return tokenString, nil
}

func validateJWT(tokenString string, claims jwt.Claims, key []byte, subject string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithSubject(subject))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing jwt token: %w", err)
	}

	return token, nil
}
