package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/model"
	"go-hotel-pms/internal/repository"
	"go-hotel-pms/pkg/database"
)

var (
	ErrRoleHotelMismatch = errors.New("GOD Admin and Super Admin accounts belong to the system hotel, all other roles to a real hotel")
	ErrSelfDelete        = errors.New("you cannot delete your own account")
)

type StaffService interface {
	Create(ctx context.Context, actor Actor, hotelID string, req *CreateStaffRequest) (*model.HotelUser, error)
	List(ctx context.Context, actor Actor, hotelID string) ([]model.UserResponse, error)
	Get(ctx context.Context, actor Actor, hotelID, userID string) (*model.UserResponse, error)
	Update(ctx context.Context, actor Actor, hotelID, userID string, req *UpdateStaffRequest) (*model.HotelUser, error)
	Delete(ctx context.Context, actor Actor, hotelID, userID string) error
	EffectivePermissions(actor Actor) *EffectivePermissionsResponse
	CreatableRoles(actor Actor) []model.RoleResponse
}

type CreateStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Role     string `json:"role" validate:"required,role_name"`
}

type UpdateStaffRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Phone    string  `json:"phone" validate:"omitempty,max=30"`
	Role     string  `json:"role" validate:"omitempty,role_name"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"` // Optional
	IsActive *bool   `json:"is_active"`
}

type EffectivePermissionsResponse struct {
	Role        string   `json:"role"`
	Department  string   `json:"department,omitempty"`
	Tier        string   `json:"tier"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
}

type staffService struct {
	authorizer
	hotelRepo repository.HotelRepository
	userRepo  repository.UserRepository
	allocator *Allocator
	policy    *access.CreationPolicy
	userIDs   identifier.FormatVersion
	logger    *zap.Logger
}

func NewStaffService(
	hotelRepo repository.HotelRepository,
	userRepo repository.UserRepository,
	allocator *Allocator,
	evaluator *access.Evaluator,
	format identifier.FormatVersion,
	logger *zap.Logger,
) StaffService {
	return &staffService{
		authorizer: authorizer{evaluator: evaluator},
		hotelRepo:  hotelRepo,
		userRepo:   userRepo,
		allocator:  allocator,
		policy:     access.NewCreationPolicy(evaluator.Catalog()),
		userIDs:    format,
		logger:     logger,
	}
}

func (s *staffService) Create(ctx context.Context, actor Actor, hotelID string, req *CreateStaffRequest) (*model.HotelUser, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	hotelID, err := identifier.NormalizeHotelID(hotelID)
	if err != nil {
		return nil, err
	}
	if err := s.scope(actor, hotelID); err != nil {
		return nil, err
	}
	if err := s.require(actor, access.PermUserCreate); err != nil {
		return nil, err
	}

	role, _ := s.catalog().Role(req.Role)
	if err := s.policy.CheckCreateRole(actor.Role, role.Name); err != nil {
		return nil, err
	}
	if err := s.checkHome(ctx, hotelID, role); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if exists, err := s.userRepo.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrEmailExists
	}

	code, err := identifier.RoleCode(role.Name)
	if err != nil {
		s.logger.Error("role has no identifier code", zap.String("role", role.Name), zap.Error(err))
		return nil, err
	}

	user := &model.HotelUser{
		HotelID:    hotelID,
		Role:       role.Name,
		Department: string(role.Department),
		Email:      email,
		FullName:   req.FullName,
		Phone:      req.Phone,
		IsActive:   true,
		Status:     model.UserStatusActive,
	}
	user.CreatedBy = actor.UserID
	user.UpdatedBy = actor.UserID
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := user.SetPermissionSnapshot(s.evaluator.EffectivePermissions(user.Role, user.Department).Strings()); err != nil {
		return nil, err
	}

	format := s.userIDs
	_, err = s.allocator.Create(ctx, Allocation{
		LockKey:  UserLockKey(hotelID, code),
		Kind:     model.IdentifierUser,
		Scope:    UserLockKey(hotelID, code),
		IssuedBy: actor.UserID,
		Next: func(ctx context.Context, gen *identifier.Generator) (string, error) {
			return gen.UserAllocator(format).NextUserID(ctx, hotelID, role.Name)
		},
	}, func(tx *gorm.DB, id string) error {
		user.ID = id
		return s.userRepo.Create(tx, user)
	})
	if database.IsDuplicateKey(err) {
		// lost an email race after the EmailExists check
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("hotel user created",
		zap.String("user_id", user.ID),
		zap.String("hotel_id", hotelID),
		zap.String("role", user.Role),
		zap.String("actor", actor.UserID),
	)
	return user, nil
}

func (s *staffService) List(ctx context.Context, actor Actor, hotelID string) ([]model.UserResponse, error) {
	if err := s.require(actor, access.PermUserRead); err != nil {
		return nil, err
	}
	if err := s.scope(actor, hotelID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *staffService) Get(ctx context.Context, actor Actor, hotelID, userID string) (*model.UserResponse, error) {
	if err := s.require(actor, access.PermUserRead); err != nil {
		return nil, err
	}
	user, err := s.load(ctx, actor, hotelID, userID)
	if err != nil {
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}

// Update edits a user the actor outranks. A role change needs role.assign and
// passes the creation policy for the new role; the identifier keeps its
// original role code.
func (s *staffService) Update(ctx context.Context, actor Actor, hotelID, userID string, req *UpdateStaffRequest) (*model.HotelUser, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.require(actor, access.PermUserUpdate); err != nil {
		return nil, err
	}
	user, err := s.load(ctx, actor, hotelID, userID)
	if err != nil {
		return nil, err
	}
	if user.ID != actor.UserID {
		if err := s.policy.CheckCreateRole(actor.Role, user.Role); err != nil {
			return nil, err
		}
	}

	fields := map[string]interface{}{}
	if req.Role != "" {
		role, _ := s.catalog().Role(req.Role)
		if role.Name != user.Role {
			if err := s.require(actor, access.PermRoleAssign); err != nil {
				return nil, err
			}
			if err := s.policy.CheckCreateRole(actor.Role, role.Name); err != nil {
				return nil, err
			}
			if err := s.checkHome(ctx, user.HotelID, role); err != nil {
				return nil, err
			}
			user.Role = role.Name
			user.Department = string(role.Department)
			fields["role"] = user.Role
			fields["department"] = user.Department
		}
	}

	user.FullName = req.FullName
	user.Phone = req.Phone
	fields["full_name"] = user.FullName
	fields["phone"] = user.Phone
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		fields["is_active"] = user.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
		fields["password"] = user.Password
	}
	if err := user.SetPermissionSnapshot(s.evaluator.EffectivePermissions(user.Role, user.Department).Strings()); err != nil {
		return nil, err
	}
	fields["permissions"] = user.Permissions
	user.UpdatedBy = actor.UserID
	fields["updated_by"] = user.UpdatedBy

	if err := s.userRepo.UpdateProfile(ctx, user.ID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete is a soft delete. The identifier is never reissued.
func (s *staffService) Delete(ctx context.Context, actor Actor, hotelID, userID string) error {
	if err := s.require(actor, access.PermUserDelete); err != nil {
		return err
	}
	user, err := s.load(ctx, actor, hotelID, userID)
	if err != nil {
		return err
	}
	if user.ID == actor.UserID {
		return ErrSelfDelete
	}
	if err := s.policy.CheckCreateRole(actor.Role, user.Role); err != nil {
		return err
	}

	if err := s.userRepo.SoftDelete(ctx, user.ID, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.logger.Info("hotel user deleted", zap.String("user_id", user.ID), zap.String("actor", actor.UserID))
	return nil
}

// EffectivePermissions re-derives the actor's permissions from the catalog.
func (s *staffService) EffectivePermissions(actor Actor) *EffectivePermissionsResponse {
	tier := s.tier(actor)
	return &EffectivePermissionsResponse{
		Role:        actor.Role,
		Department:  actor.Department,
		Tier:        tier.String(),
		Level:       int(tier),
		Permissions: s.evaluator.EffectivePermissions(actor.Role, actor.Department).Strings(),
	}
}

func (s *staffService) CreatableRoles(actor Actor) []model.RoleResponse {
	var out []model.RoleResponse
	for _, r := range s.policy.CreatableRoles(actor.Role) {
		if !identifier.HasRoleCode(r.Name) {
			continue
		}
		out = append(out, model.NewRoleResponse(s.catalog(), r))
	}
	return out
}

// checkHome enforces that system roles live in the system hotel and every
// other role in an existing, non-deleted hotel.
func (s *staffService) checkHome(ctx context.Context, hotelID string, role access.Role) error {
	systemRole := role.Tier <= access.TierSuperAdmin
	if systemRole != identifier.IsSystemHotel(hotelID) {
		return ErrRoleHotelMismatch
	}
	if systemRole {
		return nil
	}
	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrHotelNotFound
	}
	if err != nil {
		return err
	}
	if hotel.Status == access.StatusDeleted {
		return ErrHotelNotFound
	}
	return nil
}

func (s *staffService) load(ctx context.Context, actor Actor, hotelID, userID string) (*model.HotelUser, error) {
	if err := s.scope(actor, hotelID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.HotelID != hotelID {
		return nil, ErrUserNotFound
	}
	return user, nil
}
