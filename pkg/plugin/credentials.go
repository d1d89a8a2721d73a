package plugin

import (
	"fmt"

	"github.com/firdasafridi/gocrypt"

	"fortimon/pkg/models"
)

// sealedKey is the only part of the agent rule that is stored encrypted.
type sealedKey struct {
	APIKey string `gocrypt:"aes"`
}

func newCrypter(secretKey string) (*gocrypt.Option, error) {
	aesOpt, err := gocrypt.NewAESOpt(secretKey)
	if err != nil {
		return nil, err
	}
	return &gocrypt.Option{AESOpt: aesOpt}, nil
}

// EncryptAPIKey returns params with the API key encrypted under secretKey.
func EncryptAPIKey(params models.AgentParams, secretKey string) (models.AgentParams, error) {
	opt, err := newCrypter(secretKey)
	if err != nil {
		return params, fmt.Errorf("encrypt api key: %w", err)
	}

	key := sealedKey{APIKey: params.APIKey}
	if err := gocrypt.New(opt).Encrypt(&key); err != nil {
		return params, fmt.Errorf("encrypt api key: %w", err)
	}
	params.APIKey = key.APIKey
	return params, nil
}

// DecryptAPIKey returns params with the API key decrypted.
// Without a secret key the stored value is taken as plaintext.
func DecryptAPIKey(params models.AgentParams, secretKey string) (models.AgentParams, error) {
	if secretKey == "" {
		return params, nil
	}

	opt, err := newCrypter(secretKey)
	if err != nil {
		return params, fmt.Errorf("decrypt api key: %w", err)
	}

	key := sealedKey{APIKey: params.APIKey}
	if err := gocrypt.New(opt).Decrypt(&key); err != nil {
		return params, fmt.Errorf("decrypt api key: %w", err)
	}
	params.APIKey = key.APIKey
	return params, nil
}
