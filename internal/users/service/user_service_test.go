package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/identity"
	"github.com/devforge-portal/portal-backend/internal/users/domain"
)

type fakeStore struct {
	users     map[string]domain.User
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]domain.User{}}
}

func (f *fakeStore) Create(_ context.Context, u domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetByCognitoUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range f.users {
		if u.CognitoUsername == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeStore) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id string, u domain.User) (domain.User, error) {
	existing, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	u.ID = existing.ID
	u.CognitoUsername = existing.CognitoUsername
	u.CreatedAt = existing.CreatedAt
	f.users[id] = u
	return u, nil
}

func (f *fakeStore) MarkInactive(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status = domain.StatusInactive
	f.users[id] = u
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProvider struct {
	accounts  map[string]bool
	createErr error
	deleteErr error
	updates   int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: map[string]bool{}}
}

func (f *fakeProvider) CreateAccount(_ context.Context, email, _ string) (string, string, error) {
	if f.createErr != nil {
		return "", "", f.createErr
	}
	f.accounts[email] = true
	return email, "Temp#Pass123", nil
}

func (f *fakeProvider) UpdateAccount(_ context.Context, _, _, _ string) error {
	f.updates++
	return nil
}

func (f *fakeProvider) DeleteAccount(_ context.Context, username string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if !f.accounts[username] {
		return identity.ErrAccountNotFound
	}
	delete(f.accounts, username)
	return nil
}

func (f *fakeProvider) AccountExists(_ context.Context, username string) (bool, error) {
	return f.accounts[username], nil
}

func (f *fakeProvider) ListUsernames(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(f.accounts))
	for n := range f.accounts {
		out = append(out, n)
	}
	return out, nil
}

func newService(store *fakeStore, idp *fakeProvider) *UserService {
	return NewUserService(store, idp, zap.NewNop())
}

func TestUserService_Create(t *testing.T) {
	t.Run("provisions account and stores record", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		svc := newService(store, idp)

		u, tempPassword, err := svc.Create(context.Background(), domain.User{
			Email: "jamie@example.com", Name: "Jamie",
			Role: domain.RoleUser, Status: domain.StatusActive,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "jamie@example.com", u.CognitoUsername)
		assert.NotEmpty(t, tempPassword)
		assert.Equal(t, u.CreatedAt, u.UpdatedAt)
		assert.True(t, idp.accounts["jamie@example.com"])
		assert.Len(t, store.users, 1)
	})

	t.Run("identity failure stores nothing", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		idp.createErr = errors.New("throttled")
		svc := newService(store, idp)

		_, _, err := svc.Create(context.Background(), domain.User{Email: "a@b.com", Name: "A"})
		require.Error(t, err)
		assert.Empty(t, store.users)
	})

	t.Run("store failure rolls back the fresh account", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		store.createErr = errors.New("table gone")
		svc := newService(store, idp)

		_, _, err := svc.Create(context.Background(), domain.User{Email: "a@b.com", Name: "A"})
		require.Error(t, err)
		assert.Empty(t, idp.accounts)
	})
}

func TestUserService_Update(t *testing.T) {
	seed := func(store *fakeStore) domain.User {
		u := domain.User{
			ID: "u1", Email: "jamie@example.com", Name: "Jamie",
			Role: domain.RoleUser, Status: domain.StatusActive,
			CognitoUsername: "jamie@example.com",
		}
		store.users[u.ID] = u
		return u
	}

	t.Run("unchanged email and name skips identity call", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		u := seed(store)
		svc := newService(store, idp)

		_, err := svc.Update(context.Background(), u.ID, u)
		require.NoError(t, err)
		assert.Zero(t, idp.updates)
	})

	t.Run("changed name propagates to identity", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		u := seed(store)
		svc := newService(store, idp)

		u.Name = "Jamie L"
		updated, err := svc.Update(context.Background(), u.ID, u)
		require.NoError(t, err)
		assert.Equal(t, 1, idp.updates)
		assert.Equal(t, "Jamie L", updated.Name)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		svc := newService(store, idp)

		_, err := svc.Update(context.Background(), "nope", domain.User{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	seed := func(store *fakeStore, idp *fakeProvider) domain.User {
		u := domain.User{ID: "u1", Email: "jamie@example.com", CognitoUsername: "jamie@example.com"}
		store.users[u.ID] = u
		idp.accounts[u.CognitoUsername] = true
		return u
	}

	t.Run("removes account then record", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		u := seed(store, idp)
		svc := newService(store, idp)

		require.NoError(t, svc.Delete(context.Background(), u.ID))
		assert.Empty(t, store.users)
		assert.Empty(t, idp.accounts)
	})

	t.Run("identity failure leaves the record intact", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		u := seed(store, idp)
		idp.deleteErr = errors.New("throttled")
		svc := newService(store, idp)

		err := svc.Delete(context.Background(), u.ID)
		require.Error(t, err)
		assert.Len(t, store.users, 1, "store record must survive a failed identity delete")
	})

	t.Run("already-deleted account still removes the record", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		u := seed(store, idp)
		delete(idp.accounts, u.CognitoUsername)
		svc := newService(store, idp)

		require.NoError(t, svc.Delete(context.Background(), u.ID))
		assert.Empty(t, store.users)
	})
}

func TestUserService_Sync(t *testing.T) {
	t.Run("creates record for new account", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		svc := newService(store, idp)

		u, err := svc.Sync(context.Background(), "sub-1", "jamie@example.com", "Jamie")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.Equal(t, domain.StatusActive, u.Status)
		assert.Equal(t, "sub-1", u.CognitoUsername)
	})

	t.Run("idempotent for the same account", func(t *testing.T) {
		store, idp := newFakeStore(), newFakeProvider()
		svc := newService(store, idp)

		first, err := svc.Sync(context.Background(), "sub-1", "jamie@example.com", "Jamie")
		require.NoError(t, err)
		second, err := svc.Sync(context.Background(), "sub-1", "jamie@example.com", "Jamie")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, store.users, 1)
	})
}

func TestUserService_SweepIdentities(t *testing.T) {
	store, idp := newFakeStore(), newFakeProvider()
	store.users["u1"] = domain.User{ID: "u1", Status: domain.StatusActive, CognitoUsername: "alive@example.com"}
	store.users["u2"] = domain.User{ID: "u2", Status: domain.StatusActive, CognitoUsername: "gone@example.com"}
	idp.accounts["alive@example.com"] = true
	idp.accounts["orphan@example.com"] = true
	svc := newService(store, idp)

	report, err := svc.SweepIdentities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, []string{"u2"}, report.MarkedInactive)
	assert.Equal(t, []string{"orphan@example.com"}, report.OrphanAccounts)

	assert.Equal(t, domain.StatusInactive, store.users["u2"].Status)
	assert.Equal(t, domain.StatusActive, store.users["u1"].Status, "consistent pair untouched")
}
