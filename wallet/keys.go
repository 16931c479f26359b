package wallet

import (
	"bufio"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

var ErrNoKeys = errors.New("no private keys found")

// LoadPrivateKeys reads one secret per non-empty line, keeping file order.
// Secrets are not validated here.
func LoadPrivateKeys(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keys file %s: %w", path, err)
	}
	defer f.Close()

	var keys []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		keys = append(keys, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keys file %s: %w", path, err)
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoKeys)
	}
	return keys, nil
}

// ParsePrivateKey parses a hex encoded secp256k1 key, with or without 0x prefix
func ParsePrivateKey(secret string) (*ecdsa.PrivateKey, error) {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(secret), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return pk, nil
}
