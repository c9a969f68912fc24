package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amazoniatrade/marketplace/internal/models"
)

func TestUserCreateAndFind(t *testing.T) {
	users := &UserStore{DB: initTestDB(t)}
	ctx := context.Background()

	user, err := users.Create(ctx, "Maria", "maria@example.com", "hashed", models.RoleSeller)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, int64(0), user.Points)

	byEmail, err := users.FindByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byID, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Maria", byID.Name)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	users := &UserStore{DB: initTestDB(t)}
	ctx := context.Background()

	_, err := users.Create(ctx, "Maria", "maria@example.com", "hashed", models.RoleCustomer)
	require.NoError(t, err)

	_, err = users.Create(ctx, "Other Maria", "maria@example.com", "hashed2", models.RoleSeller)
	require.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, users.DB.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUserAddPoints(t *testing.T) {
	users := &UserStore{DB: initTestDB(t)}
	ctx := context.Background()

	user, err := users.Create(ctx, "Jo", "jo@example.com", "hashed", models.RoleCustomer)
	require.NoError(t, err)

	require.NoError(t, users.DB.Model(user).UpdateColumn("points", 5).Error)

	updated, err := users.AddPoints(ctx, user.ID, 20)
	require.NoError(t, err)
	require.Equal(t, int64(25), updated.Points)

	_, err = users.AddPoints(ctx, 9999, 10)
	require.ErrorIs(t, err, ErrNotFound)
}
