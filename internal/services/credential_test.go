package services

import (
	"context"
	"strings"
	"testing"

	"github.com/minseolab/loom/internal/crypto"
	"github.com/minseolab/loom/internal/loom"
	"github.com/minseolab/loom/internal/repository"
)

func newService(t *testing.T) *CredentialService {
	t.Helper()
	enc, err := crypto.NewEncryptor([]byte(strings.Repeat("k", 32)))
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}
	return NewCredentialService(repository.NewMemoryCredentials(), enc)
}

func TestCredentialSecretEncryptedAtRest(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cred := &loom.Credential{Name: "bot", Provider: "telegram", Secret: "123:token"}
	if err := svc.Create(ctx, cred); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cred.ID == "" {
		t.Fatal("Create did not assign an id")
	}

	stored, err := svc.Get(ctx, cred.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Secret == "123:token" {
		t.Error("secret stored in plaintext")
	}

	resolved, err := svc.Resolve(ctx, cred.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Secret != "123:token" {
		t.Errorf("resolved secret = %q", resolved.Secret)
	}
}

func TestCredentialListIsMasked(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, &loom.Credential{Name: "mail", Provider: "smtp", Secret: "hunter2"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List = %d entries, want 1", len(list))
	}
	if list[0].Provider != "smtp" || list[0].Name != "mail" {
		t.Errorf("unexpected entry: %+v", list[0])
	}
}
