package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/allisson/redactor/internal/crypto/domain"
)

// KMSSchemes lists the key URI schemes a private key file can be sealed with.
var KMSSchemes = []string{"awskms", "azurekeyvault", "base64key", "gcpkms", "hashivault"}

// KMSService opens the keeper that seals the server private key at rest.
type KMSService interface {
	// OpenKeeper returns a keeper for keyURI, or ErrUnsupportedKMSScheme when the
	// scheme is not one of KMSSchemes.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	parsed, err := url.Parse(keyURI)
	if err != nil || !slices.Contains(KMSSchemes, parsed.Scheme) {
		return nil, cryptoDomain.ErrUnsupportedKMSScheme
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s keeper: %w", parsed.Scheme, err)
	}
	return keeper, nil
}
