package services_test

import (
	"context"
	"testing"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RoleServiceTestSuite struct {
	suite.Suite
	mockRoleRepo       *MockRoleRepository
	mockPermissionRepo *MockPermissionRepository
	mockUserRepo       *MockUserRepository
	service            portssvc.RoleSvcFacade
	ctx                context.Context
}

func (suite *RoleServiceTestSuite) SetupTest() {
	suite.mockRoleRepo = new(MockRoleRepository)
	suite.mockPermissionRepo = new(MockPermissionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewRoleService(suite.mockRoleRepo, suite.mockPermissionRepo, suite.mockUserRepo)
	suite.ctx = context.Background()
}

func (suite *RoleServiceTestSuite) TestCreateRole_Success() {
	suite.mockRoleRepo.On("FindRoleByName", suite.ctx, "Team Lead").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPermissionRepo.On("SavePermission", suite.ctx, domain.Permission{Category: "Timesheets", Actions: []string{"view", "review"}}).
		Return(&domain.Permission{ID: "perm1"}, nil).Once()
	suite.mockRoleRepo.On("SaveRole", suite.ctx, mock.MatchedBy(func(r domain.Role) bool {
		return r.Name == "Team Lead" && r.Status == domain.RoleActive &&
			len(r.PermissionIDs) == 1 && r.PermissionIDs[0] == "perm1" && r.UserIDs != nil
	})).Return(&domain.Role{ID: "r1", Name: "Team Lead"}, nil).Once()

	role, err := suite.service.CreateRole(suite.ctx, dto.CreateRoleRequest{
		Role:        "  Team Lead ",
		Department:  "Technical",
		Permissions: []dto.PermissionRequest{{Category: "Timesheets", Actions: []string{"view", "review"}}},
	})

	suite.Require().NoError(err)
	suite.Equal("r1", role.ID)
}

func (suite *RoleServiceTestSuite) TestCreateRole_DuplicateName() {
	suite.mockRoleRepo.On("FindRoleByName", suite.ctx, "HR Admin").Return(&domain.Role{ID: "r9"}, nil).Once()

	_, err := suite.service.CreateRole(suite.ctx, dto.CreateRoleRequest{Role: "HR Admin", Department: "HR"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPermissionRepo.AssertNotCalled(suite.T(), "SavePermission", mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestUpdateRole_ReconcilesPermissions() {
	role := &domain.Role{ID: "r1", Name: "Team Lead", PermissionIDs: []string{"keep", "drop"}}
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, "r1").Return(role, nil).Once()
	suite.mockPermissionRepo.On("FindPermissionsByIDs", suite.ctx, []string{"keep", "drop"}).Return([]domain.Permission{
		{ID: "keep", Category: "Timesheets", Actions: []string{"view"}},
		{ID: "drop", Category: "Projects", Actions: []string{"view"}},
	}, nil).Once()
	suite.mockPermissionRepo.On("UpdatePermissionActions", suite.ctx, "keep", []string{"view", "review"}).Return(nil).Once()
	suite.mockPermissionRepo.On("SavePermission", suite.ctx, domain.Permission{Category: "Reports", Actions: []string{"view"}}).
		Return(&domain.Permission{ID: "new"}, nil).Once()
	suite.mockRoleRepo.On("UpdateRole", suite.ctx, mock.MatchedBy(func(r domain.Role) bool {
		return len(r.PermissionIDs) == 2 && r.PermissionIDs[0] == "keep" && r.PermissionIDs[1] == "new"
	})).Return(role, nil).Once()
	suite.mockPermissionRepo.On("DeletePermissions", suite.ctx, []string{"drop"}).Return(nil).Once()

	_, err := suite.service.UpdateRole(suite.ctx, dto.UpdateRoleRequest{
		RoleID: "r1",
		Permissions: []dto.PermissionRequest{
			{Category: "Timesheets", Actions: []string{"view", "review"}},
			{Category: "Reports", Actions: []string{"view"}},
		},
	})

	suite.Require().NoError(err)
	suite.mockPermissionRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestUpdateRole_RenameToOwnNameIsAllowed() {
	name := "Team Lead"
	role := &domain.Role{ID: "r1", Name: name}
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, "r1").Return(role, nil).Once()
	suite.mockRoleRepo.On("FindRoleByName", suite.ctx, name).Return(role, nil).Once()
	suite.mockRoleRepo.On("UpdateRole", suite.ctx, mock.Anything).Return(role, nil).Once()

	_, err := suite.service.UpdateRole(suite.ctx, dto.UpdateRoleRequest{RoleID: "r1", Role: &name})

	suite.Require().NoError(err)
	suite.mockPermissionRepo.AssertNotCalled(suite.T(), "FindPermissionsByIDs", mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestMapUsersToRole_UnknownUser() {
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, "r1").Return(&domain.Role{ID: "r1"}, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", suite.ctx, []string{"u1", "u2"}).Return([]domain.User{{UserID: "u1"}}, nil).Once()

	_, err := suite.service.MapUsersToRole(suite.ctx, dto.MapRoleRequest{RoleID: "r1", UserIDs: []string{"u1", "u2"}})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "AddUsersToRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestDeleteRole_RemovesPermissions() {
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, "r1").Return(&domain.Role{ID: "r1", PermissionIDs: []string{"p1"}}, nil).Once()
	suite.mockRoleRepo.On("DeleteRole", suite.ctx, "r1").Return(nil).Once()
	suite.mockPermissionRepo.On("DeletePermissions", suite.ctx, []string{"p1"}).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteRole(suite.ctx, "r1"))
	suite.mockPermissionRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestDeleteRole_NotFound() {
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, "r1").Return(nil, apperrors.ErrNotFound).Once()

	suite.ErrorIs(suite.service.DeleteRole(suite.ctx, "r1"), apperrors.ErrNotFound)
}

func TestRoleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoleServiceTestSuite))
}
