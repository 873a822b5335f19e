package user

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID int
	users  map[string]*User // by id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	if _, err := r.GetByEmail(context.Background(), u.Email); err == nil {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) UpdateProfile(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) UpdateRole(_ context.Context, id string, role Role) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeRepo) ListTutors(_ context.Context, _ TutorFilter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.users {
		if u.Role.CanTutor() && u.IsActive {
			out = append(out, u)
		}
	}
	return out, len(out), nil
}

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), plainHasher{})

	t.Run("defaults to student", func(t *testing.T) {
		u, err := svc.Register(ctx, "A@Example.com ", "password123", " Ada ", "")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", u.Email)
		assert.Equal(t, RoleStudent, u.Role)
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Ada", *u.DisplayName)
		assert.True(t, u.IsActive)
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "a@example.com", "password123", "", RoleStudent)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "b@example.com", "short", "", RoleStudent)
		assert.Error(t, err)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "password123", "", RoleStudent)
		assert.Error(t, err)
	})

	t.Run("bogus role", func(t *testing.T) {
		_, err := svc.Register(ctx, "c@example.com", "password123", "", Role("admin"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	registered, err := svc.Register(ctx, "a@example.com", "password123", "Ada", RoleStudent)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		u, err := svc.Login(ctx, "a@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("case-insensitive email", func(t *testing.T) {
		_, err := svc.Login(ctx, "A@EXAMPLE.COM", "password123")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo.users[registered.ID].IsActive = false
		defer func() { repo.users[registered.ID].IsActive = true }()

		_, err := svc.Login(ctx, "a@example.com", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), plainHasher{})

	u, err := svc.Register(ctx, "a@example.com", "password123", "Ada", RoleStudent)
	require.NoError(t, err)

	bio := "I teach things."
	rate := 35.0
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Bio: &bio, HourlyRate: &rate})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	require.NotNil(t, updated.HourlyRate)
	assert.Equal(t, rate, *updated.HourlyRate)

	negative := -5.0
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{HourlyRate: &negative})
	assert.Error(t, err)

	blank := "   "
	cleared, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{DisplayName: &blank})
	require.NoError(t, err)
	assert.Nil(t, cleared.DisplayName)
}

func TestPromoteToTutor(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	student, err := svc.Register(ctx, "s@example.com", "password123", "", RoleStudent)
	require.NoError(t, err)
	tutor, err := svc.Register(ctx, "t@example.com", "password123", "", RoleTutor)
	require.NoError(t, err)

	require.NoError(t, svc.PromoteToTutor(ctx, student.ID))
	assert.Equal(t, RoleBoth, repo.users[student.ID].Role)

	// Already tutor-capable: role unchanged.
	require.NoError(t, svc.PromoteToTutor(ctx, tutor.ID))
	assert.Equal(t, RoleTutor, repo.users[tutor.ID].Role)

	assert.ErrorIs(t, svc.PromoteToTutor(ctx, "ghost"), ErrNotFound)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.c", normalizeEmail("  A@B.C "))
	assert.Equal(t, "", normalizeEmail(strings.Repeat(" ", 3)))
}
