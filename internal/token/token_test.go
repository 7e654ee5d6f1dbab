package token

import (
	"errors"
	"testing"
)

const secret = "test-secret"

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue(secret, AudienceStaff, 7, 3, "doctor")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Parse(secret, tok, AudienceStaff)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if claims.UserID != 7 || claims.TenantID != 3 || claims.Role != "doctor" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.JTI == "" {
		t.Error("expected a jti claim")
	}
}

// A staff token must never pass for a client token and vice versa:
// the two sessions are independent credential sets.
func TestAudienceIsolation(t *testing.T) {
	staffTok, err := Issue(secret, AudienceStaff, 1, 1, "admin")
	if err != nil {
		t.Fatalf("Issue staff: %v", err)
	}
	clientTok, err := Issue(secret, AudienceClient, 2, 1, "client")
	if err != nil {
		t.Fatalf("Issue client: %v", err)
	}

	if _, err := Parse(secret, staffTok, AudienceClient); !errors.Is(err, ErrWrongAudience) {
		t.Errorf("staff token on client audience: got %v, want ErrWrongAudience", err)
	}
	if _, err := Parse(secret, clientTok, AudienceStaff); !errors.Is(err, ErrWrongAudience) {
		t.Errorf("client token on staff audience: got %v, want ErrWrongAudience", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := Issue(secret, AudienceClient, 1, 1, "client")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := Parse("other-secret", tok, AudienceClient); !errors.Is(err, ErrInvalid) {
		t.Errorf("wrong secret: got %v, want ErrInvalid", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse(secret, "not-a-token", AudienceClient); !errors.Is(err, ErrInvalid) {
		t.Errorf("garbage token: got %v, want ErrInvalid", err)
	}
}
