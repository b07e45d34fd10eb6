package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Auth modes. Native issues its own HS256 tokens against password hashes;
// federated verifies RS256 tokens from an external identity provider's JWKS.
const (
	AuthModeNative    = "native"
	AuthModeFederated = "federated"
)

func LoadEnv() error {
	// Try to load .env file if it exists (for local development).
	// On production, environment variables are set directly.
	if err := godotenv.Load(); err != nil {
		// .env file not found is not an error - it might be on production
		return nil
	}
	return nil
}

// AuthMode returns the configured authentication mode.
func AuthMode() string {
	if strings.TrimSpace(strings.ToLower(os.Getenv("AUTH_MODE"))) == AuthModeFederated {
		return AuthModeFederated
	}
	return AuthModeNative
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if AuthMode() == AuthModeNative && os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if AuthMode() == AuthModeFederated && os.Getenv("AUTH_JWKS_URL") == "" {
		missing = append(missing, "AUTH_JWKS_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("STORAGE_BUCKET") == "" {
		log.Println("WARNING: STORAGE_BUCKET not set - presigned uploads and asset cleanup will fail")
	}
	if os.Getenv("STORAGE_PUBLIC_BASE") == "" {
		log.Println("WARNING: STORAGE_PUBLIC_BASE not set - asset key resolution will fail")
	}
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		log.Println("WARNING: GOOGLE_APPLICATION_CREDENTIALS not set - storage features may not work")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}
	if os.Getenv("ADMIN_URL") == "" {
		log.Println("WARNING: ADMIN_URL not set")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
