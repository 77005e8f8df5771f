package models

import "strings"

// TokenMetadata carries optional display information for a token.
type TokenMetadata struct {
	LogoURI string `json:"logoURI,omitempty"`
}

// Token is a chain-scoped fungible asset descriptor. It is treated as an
// immutable value object: pricing, balance lookups and swap routing all key
// on (chainId, address).
type Token struct {
	ChainID  int64         `json:"chainId"`
	Address  string        `json:"address"`
	Symbol   string        `json:"symbol"`
	Name     string        `json:"name"`
	Decimals uint8         `json:"decimals"`
	Metadata TokenMetadata `json:"metadata,omitempty"`
}

// Equal reports whether two tokens identify the same asset. Addresses are
// compared case-insensitively since EVM addresses are checksum-cased
// inconsistently across sources.
func (t Token) Equal(other Token) bool {
	return t.ChainID == other.ChainID &&
		strings.EqualFold(t.Address, other.Address)
}

// IsNative reports whether the token is the chain's native asset, which by
// convention carries the zero address.
func (t Token) IsNative() bool {
	return IsZeroAddress(t.Address)
}

// IsZeroAddress reports whether addr is the EVM zero address.
func IsZeroAddress(addr string) bool {
	return strings.EqualFold(addr, "0x0000000000000000000000000000000000000000")
}
