package wallet

import (
	"bytes"
	"crypto/sha256"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrEmptyAddress   = errors.New("address is empty")
	ErrInvalidAddress = errors.New("address format is invalid")
)

const tronPrefix = 0x41

// ValidateAddress checks addr against the format used by network. Networks the
// exchange does not know the format for only need a non-empty address.
func ValidateAddress(network, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ErrEmptyAddress
	}
	switch strings.ToUpper(strings.TrimSpace(network)) {
	case "TRC20", "TRON", "TRX":
		return validateTron(addr)
	case "ERC20", "BEP20", "ETH", "BSC", "EVM", "POLYGON", "ARBITRUM":
		return validateEVM(addr)
	default:
		return nil
	}
}

// ValidateAny accepts either a TRON or an EVM address, for wallet fields that
// are not tied to a coin.
func ValidateAny(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ErrEmptyAddress
	}
	if validateEVM(addr) == nil || validateTron(addr) == nil {
		return nil
	}
	return ErrInvalidAddress
}

func validateEVM(addr string) error {
	if !common.IsHexAddress(addr) {
		return ErrInvalidAddress
	}
	return nil
}

// validateTron checks a base58check address: 0x41 prefix, 20 byte body and a
// double-SHA256 checksum.
func validateTron(addr string) error {
	decoded, err := base58.Decode(addr)
	if err != nil || len(decoded) != 25 || decoded[0] != tronPrefix {
		return ErrInvalidAddress
	}
	body, checksum := decoded[:21], decoded[21:]
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	if !bytes.Equal(second[:4], checksum) {
		return ErrInvalidAddress
	}
	return nil
}
