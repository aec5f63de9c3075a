package nano

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignature = "FE273DCE408C7E31DCCB0D86CAB2240D75C6FED3E591DC7D349F17F8DD647987" +
	"A8EF352CAC27C08A5E68A3A6C8EC596B10F00DB8009300DA54F263BF4F239307"

func TestPublicKeyFromSecret(t *testing.T) {
	pub, err := PublicKeyFromSecret(testSecret)
	require.NoError(t, err)
	assert.Equal(t, testPub, pub)

	addr, err := EncodeAddress(pub)
	require.NoError(t, err)
	assert.Equal(t, testAddr, addr)
}

func TestPublicKeyFromSecretErrors(t *testing.T) {
	for _, secret := range []string{"", "zz", testSecret[:32], testSecret + "00"} {
		_, err := PublicKeyFromSecret(secret)
		require.Error(t, err, secret)
		assert.True(t, errors.Is(err, ErrInvalidSecretKey), secret)
	}
}

func TestSign(t *testing.T) {
	sig, err := Sign(testReceiveHash, testSecret)
	require.NoError(t, err)
	assert.Equal(t, testSignature, sig)

	// deterministic: no randomness in the construction
	again, err := Sign(testReceiveHash, testSecret)
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	assert.True(t, Verify(testReceiveHash, testPub, sig))
	assert.False(t, Verify(testOpenHash, testPub, sig))
	assert.False(t, Verify(testReceiveHash, testRepPub, sig))
}

func TestSignErrors(t *testing.T) {
	_, err := Sign("nothex", testSecret)
	require.Error(t, err)

	_, err = Sign(testReceiveHash, "badkey")
	assert.True(t, errors.Is(err, ErrInvalidSecretKey))
}
