package solana

import "github.com/mr-tron/base58"

// IsWalletAddress reports whether s is a valid Solana wallet address:
// a base58 string decoding to a 32-byte public key.
func IsWalletAddress(s string) bool {
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

// Abbreviate returns a shortened form of an address or signature
// for display, e.g. "abcd...wxyz".
func Abbreviate(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[:4] + "..." + s[len(s)-4:]
}
