package auth

import "testing"

const testSecret = "test-secret-key"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Type != AccessToken {
		t.Errorf("Type = %q, want %q", claims.Type, AccessToken)
	}
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	token, err := GenerateRefreshToken(42, testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := ValidateRefreshToken(token, testSecret); err != nil {
		t.Errorf("ValidateRefreshToken returned error: %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken(42, testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestGenerateTokenPair(t *testing.T) {
	access, refresh, err := GenerateTokenPair(7, testSecret, 15, 7)
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	accessClaims, err := ValidateAccessToken(access, testSecret)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	refreshClaims, err := ValidateRefreshToken(refresh, testSecret)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if accessClaims.UserID != 7 || refreshClaims.UserID != 7 {
		t.Errorf("user ids = %d/%d, want 7", accessClaims.UserID, refreshClaims.UserID)
	}
}
