package config

import (
	"os"
	"testing"
)

func clearAuthEnv() {
	os.Unsetenv("AUTH_MODE")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("AUTH_JWKS_URL")
}

func TestAuthModeDefaultsToNative(t *testing.T) {
	clearAuthEnv()
	if AuthMode() != AuthModeNative {
		t.Errorf("expected native by default, got %s", AuthMode())
	}

	os.Setenv("AUTH_MODE", "FEDERATED")
	defer os.Unsetenv("AUTH_MODE")
	if AuthMode() != AuthModeFederated {
		t.Errorf("expected federated, got %s", AuthMode())
	}

	os.Setenv("AUTH_MODE", "something-else")
	if AuthMode() != AuthModeNative {
		t.Errorf("unknown mode should fall back to native, got %s", AuthMode())
	}
}

func TestValidateEnvMissingCritical(t *testing.T) {
	clearAuthEnv()
	if err := ValidateEnv(); err == nil {
		t.Error("expected error with no critical variables set")
	}

	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("JWT_SECRET", "secret")
	defer clearAuthEnv()
	if err := ValidateEnv(); err != nil {
		t.Errorf("expected valid native config, got %v", err)
	}

	// Federated mode swaps the JWT secret requirement for a JWKS URL.
	os.Setenv("AUTH_MODE", "federated")
	os.Unsetenv("JWT_SECRET")
	if err := ValidateEnv(); err == nil {
		t.Error("expected error without AUTH_JWKS_URL in federated mode")
	}
	os.Setenv("AUTH_JWKS_URL", "https://issuer.example.com/.well-known/jwks.json")
	if err := ValidateEnv(); err != nil {
		t.Errorf("expected valid federated config, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("SOME_TEST_KEY")
	if got := GetEnv("SOME_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %s", got)
	}
	os.Setenv("SOME_TEST_KEY", "value")
	defer os.Unsetenv("SOME_TEST_KEY")
	if got := GetEnv("SOME_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("expected value, got %s", got)
	}
}

func TestOfferPolicyDefaults(t *testing.T) {
	os.Unsetenv("SPECIAL_OFFERS_DELETE_MODE")
	os.Unsetenv("LAPTOP_OFFERS_DELETE_MODE")

	special := SpecialOfferPolicy()
	if special.DeleteMode != DeleteModeSoft {
		t.Errorf("special offers default to soft delete, got %s", special.DeleteMode)
	}
	if special.Rounding != RoundingFloor || special.PercentTolerance != 1 {
		t.Errorf("unexpected special policy: %+v", special)
	}

	laptop := LaptopOfferPolicy()
	if laptop.DeleteMode != DeleteModeHard {
		t.Errorf("laptop offers default to hard delete, got %s", laptop.DeleteMode)
	}
}

func TestOfferPolicyEnvOverrides(t *testing.T) {
	os.Setenv("SPECIAL_OFFERS_DELETE_MODE", "HARD")
	os.Setenv("SPECIAL_OFFERS_ROUNDING", "nearest")
	defer func() {
		os.Unsetenv("SPECIAL_OFFERS_DELETE_MODE")
		os.Unsetenv("SPECIAL_OFFERS_ROUNDING")
	}()

	special := SpecialOfferPolicy()
	if special.DeleteMode != DeleteModeHard {
		t.Errorf("expected hard delete override, got %s", special.DeleteMode)
	}
	if special.Rounding != RoundingNearest {
		t.Errorf("expected nearest rounding override, got %s", special.Rounding)
	}

	os.Setenv("SPECIAL_OFFERS_DELETE_MODE", "nonsense")
	if SpecialOfferPolicy().DeleteMode != DeleteModeSoft {
		t.Error("invalid override should fall back to the default")
	}
}
