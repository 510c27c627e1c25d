package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/identity"
	"github.com/devforge-portal/portal-backend/internal/storage/dynamo"
	"github.com/devforge-portal/portal-backend/internal/users/domain"
)

// Store is the persistence surface the user flows need. The DynamoDB
// repository satisfies it; tests substitute an in-memory fake.
type Store interface {
	Create(ctx context.Context, u domain.User) error
	Get(ctx context.Context, id string) (domain.User, error)
	GetByCognitoUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, u domain.User) (domain.User, error)
	MarkInactive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// UserService coordinates the store and the identity provider. A user record
// and its identity account must move together: provisioning creates the
// account before the record, deletion removes the account before the record,
// and a failed identity call aborts the store mutation.
type UserService struct {
	store Store
	idp   identity.Provider
	log   *zap.Logger
}

func NewUserService(store Store, idp identity.Provider, log *zap.Logger) *UserService {
	return &UserService{store: store, idp: idp, log: log}
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.store.Get(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.List(ctx)
}

// Create provisions the identity account, then writes the store record. The
// returned temporary password is surfaced exactly once, in the create
// response. If the store write fails the fresh account is rolled back so no
// orphan remains.
func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, string, error) {
	username, tempPassword, err := s.idp.CreateAccount(ctx, u.Email, u.Name)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("provision identity account: %w", err)
	}

	u.ID = uuid.NewString()
	u.CognitoUsername = username
	now := dynamo.NowISO()
	u.CreatedAt, u.UpdatedAt = now, now

	if err := s.store.Create(ctx, u); err != nil {
		if delErr := s.idp.DeleteAccount(ctx, username); delErr != nil {
			s.log.Error("rollback of identity account failed",
				zap.String("username", username), zap.Error(delErr))
		}
		return domain.User{}, "", fmt.Errorf("store user: %w", err)
	}

	return u, tempPassword, nil
}

// Update propagates changed email/name attributes to the identity account
// before touching the store. When neither changed, no identity call is made.
func (s *UserService) Update(ctx context.Context, id string, u domain.User) (domain.User, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	var email, name string
	if u.Email != existing.Email {
		email = u.Email
	}
	if u.Name != existing.Name {
		name = u.Name
	}
	if email != "" || name != "" {
		if err := s.idp.UpdateAccount(ctx, existing.CognitoUsername, email, name); err != nil {
			return domain.User{}, fmt.Errorf("update identity account: %w", err)
		}
	}

	u.UpdatedAt = dynamo.NowISO()
	return s.store.Update(ctx, id, u)
}

// Delete removes the identity account first; if that fails the store record
// is left intact so the operation stays retryable. A provider that no longer
// knows the account is treated as already-deleted and the record removal
// proceeds.
func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.idp.DeleteAccount(ctx, u.CognitoUsername); err != nil && err != identity.ErrAccountNotFound {
		return fmt.Errorf("delete identity account: %w", err)
	}

	return s.store.Delete(ctx, id)
}

// Sync upserts the store record for an already-confirmed identity account.
// It backs the post-confirmation hook: a self-service signup exists in the
// pool before any admin creates a record for it.
func (s *UserService) Sync(ctx context.Context, username, email, name string) (domain.User, error) {
	existing, err := s.store.GetByCognitoUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if err != domain.ErrNotFound {
		return domain.User{}, err
	}

	now := dynamo.NowISO()
	u := domain.User{
		ID:              uuid.NewString(),
		Email:           email,
		Name:            name,
		Role:            domain.RoleUser,
		Status:          domain.StatusActive,
		Metadata:        domain.Metadata{Skills: []string{}},
		CognitoUsername: username,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("store synced user: %w", err)
	}
	return u, nil
}
