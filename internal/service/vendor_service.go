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

type VendorService interface {
	Create(ctx context.Context, actor Actor, req *VendorRequest) (*model.Vendor, error)
	List(ctx context.Context, actor Actor) ([]model.Vendor, error)
	Get(ctx context.Context, actor Actor, vendorID string) (*model.Vendor, error)
	Update(ctx context.Context, actor Actor, vendorID string, req *VendorRequest) (*model.Vendor, error)
}

type VendorRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	IsActive *bool  `json:"is_active"`
}

type vendorService struct {
	authorizer
	vendorRepo repository.VendorRepository
	allocator  *Allocator
	logger     *zap.Logger
}

func NewVendorService(vendorRepo repository.VendorRepository, allocator *Allocator, evaluator *access.Evaluator, logger *zap.Logger) VendorService {
	return &vendorService{
		authorizer: authorizer{evaluator: evaluator},
		vendorRepo: vendorRepo,
		allocator:  allocator,
		logger:     logger,
	}
}

func (s *vendorService) Create(ctx context.Context, actor Actor, req *VendorRequest) (*model.Vendor, error) {
	if err := s.require(actor, access.PermVendorCreate); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if taken, err := s.emailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailExists
	}

	vendor := &model.Vendor{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    req.Phone,
		IsActive: true,
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	vendor.CreatedBy = actor.UserID
	vendor.UpdatedBy = actor.UserID

	_, err := s.allocator.Create(ctx, Allocation{
		LockKey:  VendorLockKey,
		Kind:     model.IdentifierVendor,
		Scope:    "vendor",
		IssuedBy: actor.UserID,
		Next: func(ctx context.Context, gen *identifier.Generator) (string, error) {
			return gen.NextVendorID(ctx)
		},
	}, func(tx *gorm.DB, id string) error {
		vendor.ID = id
		return s.vendorRepo.Create(tx, vendor)
	})
	if database.IsDuplicateKey(err) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("vendor created", zap.String("vendor_id", vendor.ID), zap.String("actor", actor.UserID))
	return vendor, nil
}

func (s *vendorService) List(ctx context.Context, actor Actor) ([]model.Vendor, error) {
	if err := s.require(actor, access.PermVendorRead); err != nil {
		return nil, err
	}
	return s.vendorRepo.FindAll(ctx)
}

func (s *vendorService) Get(ctx context.Context, actor Actor, vendorID string) (*model.Vendor, error) {
	if err := s.require(actor, access.PermVendorRead); err != nil {
		return nil, err
	}
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	return vendor, err
}

func (s *vendorService) Update(ctx context.Context, actor Actor, vendorID string, req *VendorRequest) (*model.Vendor, error) {
	if err := s.require(actor, access.PermVendorUpdate); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != vendor.Email {
		if taken, err := s.emailTaken(ctx, email); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailExists
		}
	}

	vendor.Name = strings.TrimSpace(req.Name)
	vendor.Email = email
	vendor.Phone = req.Phone
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	vendor.UpdatedBy = actor.UserID

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.vendorRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
