package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

func setupUserTest(t *testing.T) UserRepository {
	store := kv.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewUserRepository(store)
}

func TestUserRepository_Create(t *testing.T) {
	repo := setupUserTest(t)

	user, err := repo.Create(model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
		Role:         model.RoleCustomer,
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, "test@example.com", user.Email)
}

func TestUserRepository_Create_FixedID(t *testing.T) {
	repo := setupUserTest(t)

	// Seeded demo users carry well-known ids and must keep them
	user, err := repo.Create(model.User{
		ID:    "demo-customer",
		Email: "customer@demo.test",
		Role:  model.RoleCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, "demo-customer", user.ID)
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := setupUserTest(t)

	created, err := repo.Create(model.User{
		Email: "test@example.com",
		Name:  "Test User",
		Role:  model.RoleCustomer,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Email, found.Email)
	assert.Equal(t, created.Name, found.Name)

	missing, err := repo.FindByID("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := setupUserTest(t)

	_, err := repo.Create(model.User{
		Email: "Test@Example.com",
		Name:  "Test User",
		Role:  model.RoleCustomer,
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		email string
		found bool
	}{
		{name: "Exact match", email: "Test@Example.com", found: true},
		{name: "Case-insensitive match", email: "test@example.com", found: true},
		{name: "Non-existing email", email: "notfound@example.com", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByEmail(tt.email)
			require.NoError(t, err)

			if tt.found {
				require.NotNil(t, found)
				assert.Equal(t, "Test User", found.Name)
			} else {
				assert.Nil(t, found)
			}
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := setupUserTest(t)

	created, err := repo.Create(model.User{
		Email: "test@example.com",
		Name:  "Test User",
		Role:  model.RoleCustomer,
	})
	require.NoError(t, err)

	err = repo.Update(created.ID, func(u *model.User) {
		u.Name = "Updated Name"
	})
	assert.NoError(t, err)

	updated, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "test@example.com", updated.Email)
}

func TestUserRepository_PasswordHashSurvivesStorage(t *testing.T) {
	repo := setupUserTest(t)

	created, err := repo.Create(model.User{
		Email:        "hash@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleCustomer,
	})
	require.NoError(t, err)

	// Records round-trip through JSON; the hash must come back intact or
	// every login fails against an empty hash.
	found, err := repo.FindByEmail("hash@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.PasswordHash, found.PasswordHash)
	assert.NotEmpty(t, found.PasswordHash)
}

func TestUserRepository_List_NewestFirst(t *testing.T) {
	repo := setupUserTest(t)

	_, err := repo.Create(model.User{Email: "first@example.com"})
	require.NoError(t, err)
	_, err = repo.Create(model.User{Email: "second@example.com"})
	require.NoError(t, err)

	users, err := repo.List()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "second@example.com", users[0].Email)
	assert.Equal(t, "first@example.com", users[1].Email)
}
