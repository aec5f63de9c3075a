package nano

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	genesisPub  = "E89208DD038FBB269987689621D52292AE9C35941A7484756ECCED92A65093BA"
	genesisAddr = "nano_3t6k35gi95xu6tergt6p69ck76ogmitsa8mnijtpxm9fkcm736xtoncuohr3"
)

func TestEncodeDecodeAddress(t *testing.T) {
	addr, err := EncodeAddress(genesisPub)
	require.NoError(t, err)
	assert.Equal(t, genesisAddr, addr)

	pub, err := DecodeAddress(genesisAddr)
	require.NoError(t, err)
	assert.Equal(t, genesisPub, pub)

	// the legacy prefix names the same key space
	legacy := "xrb_" + strings.TrimPrefix(genesisAddr, "nano_")
	pub, err = DecodeAddress(legacy)
	require.NoError(t, err)
	assert.Equal(t, genesisPub, pub)

	// lowercase key hex is accepted
	addr, err = EncodeAddress(strings.ToLower(genesisPub))
	require.NoError(t, err)
	assert.Equal(t, genesisAddr, addr)
}

func TestDecodeAddressErrors(t *testing.T) {
	corrupted := genesisAddr[:len(genesisAddr)-1]
	if strings.HasSuffix(genesisAddr, "1") {
		corrupted += "3"
	} else {
		corrupted += "1"
	}
	tests := []struct {
		name string
		addr string
	}{
		{"empty", ""},
		{"unknown prefix", "bano_" + strings.TrimPrefix(genesisAddr, "nano_")},
		{"too short", genesisAddr[:20]},
		{"too long", genesisAddr + "11"},
		{"disallowed character", strings.Replace(genesisAddr, "3t6k", "3t0k", 1)},
		{"checksum mismatch", corrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAddress(tt.addr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAddress), err.Error())
		})
	}
}

func TestEncodeAddressBadKey(t *testing.T) {
	for _, key := range []string{"", "zz", genesisPub[:10], genesisPub + "00"} {
		_, err := EncodeAddress(key)
		require.Error(t, err)
	}
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress(genesisAddr))
	assert.False(t, ValidAddress("nano_invalid"))
}
