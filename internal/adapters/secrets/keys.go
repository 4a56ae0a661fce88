// Package secrets names where provider API keys live in the secret stores.
package secrets

import (
	"fmt"
	"strings"
)

const keyPrefix = "sparky"

// Providers that need an API key.
var Providers = []string{"openai", "gemini", "huggingface"}

// APIKey is the store key holding the API key of provider.
func APIKey(provider string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	if !KnownProvider(name) {
		return "", fmt.Errorf("unknown provider %q (want one of %s)", provider, strings.Join(Providers, ", "))
	}
	return keyPrefix + "/" + name + "/api_key", nil
}

func KnownProvider(provider string) bool {
	for _, known := range Providers {
		if provider == known {
			return true
		}
	}
	return false
}

// ProviderOf extracts the provider from a key built by APIKey.
func ProviderOf(key string) (string, bool) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] != keyPrefix || parts[2] != "api_key" {
		return "", false
	}
	return parts[1], KnownProvider(parts[1])
}
