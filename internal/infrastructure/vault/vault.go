package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/archoffice/bff-admin/config"
	"github.com/hashicorp/vault/api"
)

const mountPath = "secret"

func CreateVaultClient(conf config.VaultConfig) (*api.Client, error) {
	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = conf.URL
	vaultConfig.MaxRetries = 0

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}
	client.SetToken(conf.Token)

	return client, nil
}

// LoadSecrets reads the KV v2 secret stored at <env>/<role>. A secret that
// does not exist yields an empty map.
func LoadSecrets(ctx context.Context, client *api.Client, conf config.VaultConfig) (map[string]string, error) {
	path := conf.Env + "/" + conf.RoleName

	secret, err := client.KVv2(mountPath).Get(ctx, path)
	if errors.Is(err, api.ErrSecretNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secret %s/%s: %w", mountPath, path, err)
	}

	return stringValues(secret.Data), nil
}

func stringValues(data map[string]interface{}) map[string]string {
	values := make(map[string]string, len(data))
	for k, v := range data {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}

	return values
}
