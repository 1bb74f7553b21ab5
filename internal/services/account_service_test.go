package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/db_models"
	"roamio/internal/models/request_models"
	"roamio/pkg/utils"
)

func TestCreateAccountHashesPassword(t *testing.T) {
	repo := new(MockAccountRepo)
	repo.On("FindByEmail", mock.Anything, "trip@example.com").Return(nil, nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(a *db_models.Account) bool {
		return a.Email == "trip@example.com" &&
			a.PasswordHash != "wanderlust1" &&
			utils.ComparePasswords(a.PasswordHash, "wanderlust1") == nil
	})).Return(nil)

	svc := NewAccountService(repo)
	resp, err := svc.CreateAccount(context.Background(), request_models.RegisterRequest{
		Email:    "trip@example.com",
		Password: "wanderlust1",
		FullName: "Asha Rao",
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", resp.FullName)
	repo.AssertExpectations(t)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	repo := new(MockAccountRepo)
	repo.On("FindByEmail", mock.Anything, mock.Anything).Return(&db_models.Account{Email: "trip@example.com"}, nil)

	svc := NewAccountService(repo)
	_, err := svc.CreateAccount(context.Background(), request_models.RegisterRequest{
		Email:    "trip@example.com",
		Password: "wanderlust1",
	})
	require.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := utils.HashPassword("wanderlust1")
	require.NoError(t, err)

	account := &db_models.Account{Email: "trip@example.com", PasswordHash: hash, FullName: "Asha Rao"}
	repo := new(MockAccountRepo)
	repo.On("FindByEmail", mock.Anything, "trip@example.com").Return(account, nil)

	svc := NewAccountService(repo)
	resp, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "trip@example.com",
		Password: "wanderlust1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "trip@example.com", resp.Account.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("wanderlust1")
	require.NoError(t, err)

	repo := new(MockAccountRepo)
	repo.On("FindByEmail", mock.Anything, mock.Anything).
		Return(&db_models.Account{PasswordHash: hash}, nil)

	svc := NewAccountService(repo)
	_, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "trip@example.com",
		Password: "guessing",
	})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockAccountRepo)
	repo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewAccountService(repo)
	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestGetProfileNotFound(t *testing.T) {
	repo := new(MockAccountRepo)
	repo.On("FindById", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewAccountService(repo)
	_, err := svc.GetProfile(context.Background(), "b9f2f5a0-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, utils.ErrAccountNotFound)
}
