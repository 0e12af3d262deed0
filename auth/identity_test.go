package auth_test

import (
	"testing"
	"time"

	"github.com/beatwave/onair/auth"
	"github.com/beatwave/onair/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityVerifier(t *testing.T) {
	assert := assert.New(t)

	// Case 0: empty secret is rejected
	{
		_, err := auth.NewHMACIdentityVerifier(nil)
		assert.NotNil(err)
	}

	uut, err := auth.NewHMACIdentityVerifier([]byte(uuid.NewString()))
	assert.Nil(err)

	currentTime := time.Now().UTC()
	userID := uuid.NewString()

	// Case 1: round trip
	signed, err := uut.SignIdentity(userID, "dj-nova", time.Minute*15, currentTime)
	assert.Nil(err)
	{
		claim, err := uut.ParseIdentity(signed, currentTime.Add(time.Minute))
		assert.Nil(err)
		assert.Equal(userID, claim.UserID)
		assert.Equal("dj-nova", claim.Username)
	}

	// Case 2: expired identity
	{
		_, err := uut.ParseIdentity(signed, currentTime.Add(time.Minute*20))
		assert.NotNil(err)
		assert.IsType(common.ErrorTokenExpired{}, err)
	}

	// Case 3: garbage token
	{
		_, err := uut.ParseIdentity("not-a-jwt", currentTime)
		assert.NotNil(err)
		assert.IsType(common.ErrorInvalidToken{}, err)
	}

	// Case 4: token signed with a different secret
	{
		other, err := auth.NewHMACIdentityVerifier([]byte(uuid.NewString()))
		assert.Nil(err)
		foreign, err := other.SignIdentity(userID, "dj-nova", time.Minute*15, currentTime)
		assert.Nil(err)
		_, parseErr := uut.ParseIdentity(foreign, currentTime)
		assert.NotNil(parseErr)
		assert.IsType(common.ErrorInvalidToken{}, parseErr)
	}

	// Case 5: unsigned token is rejected regardless of claims
	{
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": userID,
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.Nil(err)
		_, parseErr := uut.ParseIdentity(raw, currentTime)
		assert.NotNil(parseErr)
	}
}

func TestBroadcastTokenMint(t *testing.T) {
	assert := assert.New(t)

	seen := map[string]bool{}
	for idx := 0; idx < 16; idx++ {
		token := auth.MintBroadcastToken()
		assert.NotEmpty(token)
		assert.False(seen[token])
		seen[token] = true
	}

	endTime := time.Date(2024, 6, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(
		endTime.Add(time.Minute*15), auth.ComputeTokenExpiry(endTime, time.Minute*15),
	)
}
