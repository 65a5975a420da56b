package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWalletAddress(t *testing.T) {
	t.Run("should accept a 32-byte base58 public key", func(t *testing.T) {
		// System program address, decodes to 32 zero bytes
		assert.True(t, IsWalletAddress("11111111111111111111111111111111"))
		// Token program address
		assert.True(t, IsWalletAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	})

	t.Run("should reject non-base58 input", func(t *testing.T) {
		assert.False(t, IsWalletAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
		assert.False(t, IsWalletAddress("not an address"))
	})

	t.Run("should reject base58 input of the wrong length", func(t *testing.T) {
		assert.False(t, IsWalletAddress("abc"))
		assert.False(t, IsWalletAddress(""))
	})
}

func TestAbbreviate(t *testing.T) {
	t.Run("should keep first and last four characters", func(t *testing.T) {
		assert.Equal(t, "Toke...Q5DA", Abbreviate("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	})

	t.Run("should leave very short strings alone", func(t *testing.T) {
		assert.Equal(t, "abcd", Abbreviate("abcd"))
		assert.Equal(t, "", Abbreviate(""))
	})
}
