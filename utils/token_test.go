package utils_test

import (
	"strings"
	"testing"

	"tripsplit-backend/config"
	"tripsplit-backend/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	token, err := utils.GenerateToken("alice", []uint{3, 7})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want alice", claims.Username)
	}
	if !claims.OwnsTrip(3) || !claims.OwnsTrip(7) {
		t.Errorf("snapshot missing owned trips: %v", claims.Trips)
	}
	if claims.OwnsTrip(4) {
		t.Error("OwnsTrip(4) = true for a trip outside the snapshot")
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	config.Load()

	token, err := utils.GenerateToken("alice", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// Flip part of the signature
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := utils.ParseToken(tampered); err == nil {
		t.Error("ParseToken accepted a tampered token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.Load()

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := utils.ParseToken(tok); err == nil {
			t.Errorf("ParseToken(%q) succeeded, want error", tok)
		}
	}
}
