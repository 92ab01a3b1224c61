package gcal

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

// ServiceAccountClient builds an authorized HTTP client from a service
// account key file, scoped to the given APIs.
func ServiceAccountClient(ctx context.Context, credentialsPath string, scopes ...string) (*http.Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}

	return jwtConfig.Client(ctx), nil
}
