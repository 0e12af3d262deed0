package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/beatwave/onair/common"
	"github.com/golang-jwt/jwt/v5"
)

// sessionIdentityClaims JWT claims carried by a platform session identity
type sessionIdentityClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IdentityVerifier verify platform session identity tokens presented on go-live
type IdentityVerifier interface {
	/*
		ParseIdentity verify a session identity JWT and extract the performer identity

			@param tokenString string - session identity JWT
			@param currentTime time.Time - current timestamp
			@returns the performer identity behind the token
	*/
	ParseIdentity(tokenString string, currentTime time.Time) (common.LiveClaim, error)

	/*
		SignIdentity sign a new session identity JWT

			@param userID string - platform account ID
			@param username string - display name
			@param validFor time.Duration - identity token lifetime
			@param currentTime time.Time - current timestamp
			@returns signed JWT
	*/
	SignIdentity(
		userID, username string, validFor time.Duration, currentTime time.Time,
	) (string, error)
}

// hmacIdentityVerifierImpl implements IdentityVerifier with a shared HS256 secret
type hmacIdentityVerifierImpl struct {
	secret []byte
}

/*
NewHMACIdentityVerifier define a session identity verifier sharing a HS256 secret
with the platform account service

	@param secret []byte - shared signing secret
	@returns new verifier
*/
func NewHMACIdentityVerifier(secret []byte) (IdentityVerifier, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("identity verifier requires a non-empty secret")
	}
	return &hmacIdentityVerifierImpl{secret: secret}, nil
}

func (v *hmacIdentityVerifierImpl) ParseIdentity(
	tokenString string, currentTime time.Time,
) (common.LiveClaim, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&sessionIdentityClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Pin the signing method to prevent algorithm confusion
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return currentTime }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.LiveClaim{}, common.ErrorTokenExpired{ExpiredAt: currentTime}
		}
		return common.LiveClaim{}, common.ErrorInvalidToken{}
	}

	claims, ok := parsed.Claims.(*sessionIdentityClaims)
	if !ok || !parsed.Valid {
		return common.LiveClaim{}, common.ErrorInvalidToken{}
	}
	if claims.UserID == "" {
		return common.LiveClaim{}, common.ErrorInvalidToken{}
	}

	return common.LiveClaim{UserID: claims.UserID, Username: claims.Username}, nil
}

func (v *hmacIdentityVerifierImpl) SignIdentity(
	userID, username string, validFor time.Duration, currentTime time.Time,
) (string, error) {
	claims := &sessionIdentityClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(validFor)),
			IssuedAt:  jwt.NewNumericDate(currentTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
