package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("HashPassword() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("HashPassword() algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("HashPassword() params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}
}

func TestVerifyPassword(t *testing.T) {
	argonHash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	legacy, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  error
	}{
		{name: "argon2 match", password: "s3cret", hash: argonHash, want: true},
		{name: "argon2 mismatch", password: "wrong", hash: argonHash, want: false},
		{name: "bcrypt match", password: "s3cret", hash: string(legacy), want: true},
		{name: "bcrypt mismatch", password: "wrong", hash: string(legacy), want: false},
		{name: "empty hash", password: "s3cret", hash: "", wantErr: ErrEmptyHash},
		{name: "garbage", password: "s3cret", hash: "not-a-hash", wantErr: ErrInvalidHashFormat},
		{name: "truncated bcrypt", password: "s3cret", hash: "$2a$10$short", wantErr: ErrInvalidHashFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, tt.hash)
			if err != tt.wantErr {
				t.Fatalf("VerifyPassword() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	hash2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyPasswordWrongArgonVersion(t *testing.T) {
	_, err := VerifyPassword("x", "$argon2id$v=16$m=65536,t=3,p=2$c2FsdA$a2V5")
	if err != ErrIncompatibleVersion {
		t.Errorf("VerifyPassword() error = %v, want %v", err, ErrIncompatibleVersion)
	}
}
