package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// PublicKeyFromBase58 decodes a base58 encoded account address
func PublicKeyFromBase58(encoded string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base58 address: %s", encoded)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid address length: %d", len(decoded))
	}
	return decoded, nil
}

// MustPublicKeyFromBase58 is PublicKeyFromBase58 for well-known constants
func MustPublicKeyFromBase58(encoded string) ed25519.PublicKey {
	key, err := PublicKeyFromBase58(encoded)
	if err != nil {
		panic(err)
	}
	return key
}

// PublicKeysFromBase58 decodes a list of base58 encoded addresses
func PublicKeysFromBase58(encoded []string) ([]ed25519.PublicKey, error) {
	keys := make([]ed25519.PublicKey, len(encoded))
	for i, v := range encoded {
		key, err := PublicKeyFromBase58(v)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}
