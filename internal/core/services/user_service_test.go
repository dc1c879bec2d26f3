package services_test

import (
	"context"
	"testing"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockRoleRepo *MockRoleRepository
	service      portssvc.UserSvcFacade
	ctx          context.Context
	hash         string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRoleRepo = new(MockRoleRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockRoleRepo)
	suite.ctx = context.Background()

	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)
	suite.hash = hash
}

func (suite *UserServiceTestSuite) TestGetProfile_ResolvesRoleAndManager() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "u1").Return(&domain.User{
		UserID: "u1", FullName: "priya nair", Email: "priya@example.com", ReportingManagerID: "m1",
	}, nil).Once()
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, "u1").Return(&domain.Role{Name: "Team Lead"}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "m1").Return(&domain.User{UserID: "m1", FullName: "ARUN GEORGE"}, nil).Once()

	profile, err := suite.service.GetProfile(suite.ctx, "u1")

	suite.Require().NoError(err)
	suite.Equal("Priya Nair", profile.Name)
	suite.Equal("Team Lead", profile.Role)
	suite.Equal("Arun George", profile.ReportingManager)
}

func (suite *UserServiceTestSuite) TestGetProfile_WithoutRole() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "u1").Return(&domain.User{UserID: "u1", FullName: "priya"}, nil).Once()
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, "u1").Return(nil, apperrors.ErrNotFound).Once()

	profile, err := suite.service.GetProfile(suite.ctx, "u1")

	suite.Require().NoError(err)
	suite.Empty(profile.Role)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	active := &domain.User{UserID: "u1", IsActive: true, PasswordHash: &suite.hash}
	inactive := &domain.User{UserID: "u2", IsActive: false, PasswordHash: &suite.hash}
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "ok@example.com").Return(active, nil)
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "off@example.com").Return(inactive, nil)
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(suite.ctx, "ok@example.com", "s3cret-pass")
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	_, err = suite.service.AuthenticateUser(suite.ctx, "ok@example.com", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(suite.ctx, "off@example.com", "s3cret-pass")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(suite.ctx, "nobody@example.com", "s3cret-pass")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
