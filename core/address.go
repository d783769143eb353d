package core

// address.go – adapted from the teacher's address_zero.go and
// address_from_common_tokens.go/from_common.go: the same go-ethereum
// common.Address conversion, now feeding a single Move address literal
// representation instead of a wallet-balance key.

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address mirrors go-ethereum's 20-byte account address. IR literals of
// Solidity type `address` are parsed into this representation before the
// type mapper renders them as Move `@0x...` literals.
type Address [20]byte

// AddressZero is the zero-value address. Declared at package level so every
// caller references one sentinel instance, matching the teacher's
// AddressZero convention.
var AddressZero = Address{}

// FromCommon converts a go-ethereum common.Address into Address.
func FromCommon(a common.Address) Address {
	var out Address
	copy(out[:], a.Bytes())
	return out
}

// ToCommon converts Address back into a go-ethereum common.Address, used
// when routing through go-ethereum helpers (e.g. crypto.Keccak256 callers
// that expect the standard type).
func ToCommon(a Address) common.Address {
	return common.BytesToAddress(a[:])
}

// ParseAddressLiteral parses a Solidity address literal (with or without EIP-55
// checksum casing) into Address.
func ParseAddressLiteral(lit string) (Address, error) {
	if !common.IsHexAddress(lit) {
		return Address{}, fmt.Errorf("not a valid address literal: %q", lit)
	}
	return FromCommon(common.HexToAddress(lit)), nil
}

// MoveLiteral renders Address as a Move address literal, e.g. "@0x0" for the
// zero address or "@0xabc...".
func (a Address) MoveLiteral() string {
	if a == AddressZero {
		return "@0x0"
	}
	hex := strings.ToLower(ToCommon(a).Hex()) // "0x" + 40 hex chars
	// Move accepts leading zero trimming but it is not required; keep the
	// full 20-byte form for readability and diff-stability.
	return "@" + hex
}
