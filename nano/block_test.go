package nano

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// key pair and hashes shared with sign_test.go; the block hash and
// signature values were produced against a reference implementation of
// the wire format.
const (
	testSecret = "9F0E444C69F77A49BD0BE89DB92C38FE713E0963165CCA12FAF5712D7657120F"
	testPub    = "C008B814A7D269A1FA3C6528B19201A24D797912DB9996FF02A1FF356E45552B"
	testAddr   = "nano_3i1aq1cchnmbn9x5rsbap8b15akfh7wj7pwskuzi7ahz8oq6cobd99d4r3b7"

	testRepPub  = "B0311EA55708D6A53C75CDBF88300259C6D018522FE3D4D0A242E431F9E8B6D0"
	testRepAddr = "nano_3e3j5tkog48pnny9dmfzj1r16pg8t1e76dz5tmac6iq689wyjfpiij4txtdo"

	testPrevious = "1AC1A081F2AD6E2F7044C9BB96C8B53B55B3F8DACA5C5B35DEB04DF290D2CF9F"
	testLink     = "65DE2D1B9AFDA9D5F0AFA6E229EAEA9DCAE9BA8FC26FF9D8C7C8D82C2A57F321"

	testReceiveHash = "92E7FFDB3AD3E772205B7E0617B9FA33CAA4EB70D503AF20D4CE71245CDF63C8"
	testOpenHash    = "4635F104EB88550E70BCD505613537CDB517C74E89462DB3967CD545EB781921"
)

func TestBuildOpen(t *testing.T) {
	b := NewBuilder(testRepAddr)
	amount := new(big.Int).Mul(big.NewInt(7), pow10(29))
	blk, err := b.BuildOpen(testAddr, PendingBlock{Hash: testLink, Amount: amount})
	require.NoError(t, err)

	assert.Equal(t, KindOpen, blk.Kind)
	assert.Equal(t, ZeroHash, blk.Previous)
	assert.Equal(t, testRepAddr, blk.Representative)
	assert.Equal(t, amount.String(), blk.Balance)
	assert.Equal(t, testLink, blk.Link)

	hash, err := blk.Hash()
	require.NoError(t, err)
	assert.Equal(t, testOpenHash, hash)

	// opening work is generated against the account's own key, not the
	// nonexistent previous block
	root, err := blk.WorkRoot()
	require.NoError(t, err)
	assert.Equal(t, testPub, root)
}

func TestBuildOpenErrors(t *testing.T) {
	b := NewBuilder(testRepAddr)
	_, err := b.BuildOpen("nano_bogus", PendingBlock{Hash: testLink, Amount: big.NewInt(1)})
	assert.True(t, errors.Is(err, ErrInvalidAddress))

	_, err = b.BuildOpen(testAddr, PendingBlock{Hash: testLink})
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}

func TestBuildReceive(t *testing.T) {
	b := NewBuilder(testRepAddr)
	acct := Account{
		Address:        testAddr,
		Frontier:       testPrevious,
		Representative: testRepAddr,
		Balance:        pow10(30),
	}
	blk, err := b.BuildReceive(acct, PendingBlock{Hash: testLink, Amount: big.NewInt(12345)})
	require.NoError(t, err)

	assert.Equal(t, KindReceive, blk.Kind)
	assert.Equal(t, testPrevious, blk.Previous)
	assert.Equal(t, new(big.Int).Add(pow10(30), big.NewInt(12345)).String(), blk.Balance)

	hash, err := blk.Hash()
	require.NoError(t, err)
	assert.Equal(t, testReceiveHash, hash)

	root, err := blk.WorkRoot()
	require.NoError(t, err)
	assert.Equal(t, testPrevious, root)
}

func TestBuildReceiveErrors(t *testing.T) {
	b := NewBuilder(testRepAddr)

	// unopened accounts need an open block instead
	_, err := b.BuildReceive(Account{Address: testAddr, Balance: big.NewInt(0)},
		PendingBlock{Hash: testLink, Amount: big.NewInt(1)})
	require.Error(t, err)

	// the 128 bit balance field cannot silently wrap
	maxBalance := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	_, err = b.BuildReceive(Account{Address: testAddr, Frontier: testPrevious, Balance: maxBalance},
		PendingBlock{Hash: testLink, Amount: big.NewInt(1)})
	assert.True(t, errors.Is(err, ErrBalanceOverflow))
}

func TestBuildSend(t *testing.T) {
	b := NewBuilder(testRepAddr)
	acct := Account{
		Address:        testAddr,
		Frontier:       testPrevious,
		Representative: testRepAddr,
		Balance:        pow10(30),
	}
	amount := new(big.Int).Mul(big.NewInt(3), pow10(29))
	blk, err := b.BuildSend(acct, testRepAddr, amount)
	require.NoError(t, err)

	assert.Equal(t, KindSend, blk.Kind)
	assert.Equal(t, testPrevious, blk.Previous)
	// exact integer debit
	assert.Equal(t, new(big.Int).Mul(big.NewInt(7), pow10(29)).String(), blk.Balance)
	// the link carries the destination's public key, not its address
	assert.Equal(t, testRepPub, blk.Link)

	root, err := blk.WorkRoot()
	require.NoError(t, err)
	assert.Equal(t, testPrevious, root)
}

func TestBuildSendErrors(t *testing.T) {
	b := NewBuilder(testRepAddr)
	acct := Account{Address: testAddr, Frontier: testPrevious, Balance: pow10(30)}

	_, err := b.BuildSend(acct, testRepAddr, new(big.Int).Add(pow10(30), big.NewInt(1)))
	assert.True(t, errors.Is(err, ErrInsufficientBalance))

	_, err = b.BuildSend(acct, "nano_bogus", big.NewInt(1))
	assert.True(t, errors.Is(err, ErrInvalidAddress))

	_, err = b.BuildSend(acct, testRepAddr, big.NewInt(0))
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	_, err = b.BuildSend(Account{Address: testAddr, Balance: big.NewInt(0)}, testRepAddr, big.NewInt(1))
	require.Error(t, err)
}

func TestHashDeterministic(t *testing.T) {
	b := NewBuilder(testRepAddr)
	acct := Account{Address: testAddr, Frontier: testPrevious, Representative: testRepAddr, Balance: pow10(30)}
	blk1, err := b.BuildSend(acct, testRepAddr, big.NewInt(1))
	require.NoError(t, err)
	blk2, err := b.BuildSend(acct, testRepAddr, big.NewInt(1))
	require.NoError(t, err)

	h1, err := blk1.Hash()
	require.NoError(t, err)
	h2, err := blk2.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
