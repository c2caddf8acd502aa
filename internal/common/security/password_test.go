package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Abcdef12")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Abcdef12" {
		t.Fatalf("hash must not equal the raw password")
	}

	if !CheckPasswordHash("Abcdef12", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}
