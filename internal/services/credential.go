// Package services holds the application services layered over the
// repositories.
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/minseolab/loom/internal/crypto"
	"github.com/minseolab/loom/internal/loom"
	"github.com/minseolab/loom/internal/repository"
)

// CredentialService manages credential profiles with secret encryption.
type CredentialService struct {
	repo repository.CredentialRepository
	enc  *crypto.Encryptor
}

func NewCredentialService(repo repository.CredentialRepository, enc *crypto.Encryptor) *CredentialService {
	return &CredentialService{repo: repo, enc: enc}
}

// Create encrypts the secret and stores a new credential profile.
func (s *CredentialService) Create(ctx context.Context, cred *loom.Credential) error {
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	if err := s.encryptSecret(cred); err != nil {
		return err
	}
	return s.repo.Create(ctx, cred)
}

// Get retrieves a credential profile with its secret still encrypted.
func (s *CredentialService) Get(ctx context.Context, id string) (*loom.Credential, error) {
	return s.repo.Get(ctx, id)
}

// Resolve retrieves a credential profile and decrypts its secret for
// runtime use.
func (s *CredentialService) Resolve(ctx context.Context, id string) (*loom.Credential, error) {
	cred, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Copy so the stored record keeps its encrypted secret.
	out := *cred
	if out.Secret != "" {
		dec, err := s.enc.Decrypt(out.Secret)
		if err != nil {
			return nil, err
		}
		out.Secret = dec
	}
	return &out, nil
}

// List returns all credential profiles in safe (masked) form.
func (s *CredentialService) List(ctx context.Context) ([]loom.CredentialSafe, error) {
	creds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	safe := make([]loom.CredentialSafe, len(creds))
	for i, c := range creds {
		safe[i] = c.Safe()
	}
	return safe, nil
}

// Update encrypts the secret and updates a credential profile.
func (s *CredentialService) Update(ctx context.Context, cred *loom.Credential) error {
	if err := s.encryptSecret(cred); err != nil {
		return err
	}
	return s.repo.Update(ctx, cred)
}

// Delete removes a credential profile.
func (s *CredentialService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *CredentialService) encryptSecret(cred *loom.Credential) error {
	if cred.Secret == "" {
		return nil
	}
	enc, err := s.enc.Encrypt(cred.Secret)
	if err != nil {
		return err
	}
	cred.Secret = enc
	return nil
}
