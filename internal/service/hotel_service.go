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
)

var ErrStatusConflict = errors.New("hotel status changed by another request, reload and retry")

type HotelService interface {
	Create(ctx context.Context, actor Actor, req *CreateHotelRequest) (*model.Hotel, error)
	List(ctx context.Context, actor Actor, filter model.HotelFilter) ([]model.HotelResponse, error)
	Get(ctx context.Context, actor Actor, hotelID string) (*model.HotelResponse, error)
	Update(ctx context.Context, actor Actor, hotelID string, req *UpdateHotelRequest) (*model.Hotel, error)
	ChangeStatus(ctx context.Context, actor Actor, hotelID string, req *ChangeStatusRequest) (*StatusChangeResult, error)
	HardDelete(ctx context.Context, actor Actor, hotelID string) error
	History(ctx context.Context, actor Actor, hotelID string) ([]model.HotelStatusAudit, error)
}

type CreateHotelRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phone" validate:"omitempty,max=30"`
	Address  string  `json:"address"`
	City     string  `json:"city" validate:"omitempty,max=100"`
	Country  string  `json:"country" validate:"omitempty,max=100"`
	VendorID *string `json:"vendor_id" validate:"omitempty,digits,len=10"`
}

type UpdateHotelRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address"`
	City    string `json:"city" validate:"omitempty,max=100"`
	Country string `json:"country" validate:"omitempty,max=100"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,hotel_status"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type StatusChangeResult struct {
	Hotel    model.HotelResponse `json:"hotel"`
	Previous access.HotelStatus  `json:"previous_status"`
	Current  access.HotelStatus  `json:"current_status"`
	Changed  bool                `json:"changed"`
}

type hotelService struct {
	authorizer
	db         *gorm.DB
	hotelRepo  repository.HotelRepository
	vendorRepo repository.VendorRepository
	userRepo   repository.UserRepository
	auditRepo  repository.AuditRepository
	allocator  *Allocator
	guard      *access.LifecycleGuard
	logger     *zap.Logger
}

func NewHotelService(
	db *gorm.DB,
	hotelRepo repository.HotelRepository,
	vendorRepo repository.VendorRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	allocator *Allocator,
	evaluator *access.Evaluator,
	logger *zap.Logger,
) HotelService {
	return &hotelService{
		authorizer: authorizer{evaluator: evaluator},
		db:         db,
		hotelRepo:  hotelRepo,
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		allocator:  allocator,
		guard:      access.NewLifecycleGuard(),
		logger:     logger,
	}
}

func (s *hotelService) Create(ctx context.Context, actor Actor, req *CreateHotelRequest) (*model.Hotel, error) {
	if err := s.require(actor, access.PermHotelCreate); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.VendorID != nil {
		if _, err := s.vendorRepo.FindByID(ctx, *req.VendorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVendorNotFound
			}
			return nil, err
		}
	}

	hotel := &model.Hotel{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		VendorID: req.VendorID,
		Status:   access.StatusActive,
	}
	hotel.CreatedBy = actor.UserID
	hotel.UpdatedBy = actor.UserID

	_, err := s.allocator.Create(ctx, Allocation{
		LockKey:  HotelLockKey,
		Kind:     model.IdentifierHotel,
		Scope:    "hotel",
		IssuedBy: actor.UserID,
		Next: func(ctx context.Context, gen *identifier.Generator) (string, error) {
			return gen.NextHotelID(ctx)
		},
	}, func(tx *gorm.DB, id string) error {
		hotel.ID = id
		return s.hotelRepo.Create(tx, hotel)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("hotel created", zap.String("hotel_id", hotel.ID), zap.String("actor", actor.UserID))
	return hotel, nil
}

func (s *hotelService) List(ctx context.Context, actor Actor, filter model.HotelFilter) ([]model.HotelResponse, error) {
	if err := s.require(actor, access.PermHotelRead); err != nil {
		return nil, err
	}
	if !actor.IsSystem() {
		filter.HotelID = actor.HotelID
	}

	hotels, err := s.hotelRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]model.HotelResponse, len(hotels))
	for i, h := range hotels {
		responses[i] = h.ToResponse()
	}
	return responses, nil
}

func (s *hotelService) Get(ctx context.Context, actor Actor, hotelID string) (*model.HotelResponse, error) {
	if err := s.require(actor, access.PermHotelRead); err != nil {
		return nil, err
	}
	hotel, err := s.load(ctx, actor, hotelID)
	if err != nil {
		return nil, err
	}
	response := hotel.ToResponse()
	return &response, nil
}

func (s *hotelService) Update(ctx context.Context, actor Actor, hotelID string, req *UpdateHotelRequest) (*model.Hotel, error) {
	if err := s.require(actor, access.PermHotelUpdate); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	hotel, err := s.load(ctx, actor, hotelID)
	if err != nil {
		return nil, err
	}

	hotel.Name = strings.TrimSpace(req.Name)
	hotel.Email = req.Email
	hotel.Phone = req.Phone
	hotel.Address = req.Address
	hotel.City = req.City
	hotel.Country = req.Country
	hotel.UpdatedBy = actor.UserID

	if err := s.hotelRepo.UpdateDetails(ctx, hotel); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	// reload so the response carries the stored status, not the one read above
	return s.load(ctx, actor, hotelID)
}

// ChangeStatus runs the lifecycle guard on the stored status first, then the
// permission token for the target, then persists the flip with its audit row.
func (s *hotelService) ChangeStatus(ctx context.Context, actor Actor, hotelID string, req *ChangeStatusRequest) (*StatusChangeResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	target, _ := access.ParseHotelStatus(req.Status)

	hotel, err := s.load(ctx, actor, hotelID)
	if err != nil {
		return nil, err
	}
	current := hotel.Status

	decision := s.guard.CanTransition(s.tier(actor), current, target)
	if !decision.Allowed {
		s.logger.Info("hotel status transition denied",
			zap.String("hotel_id", hotelID),
			zap.String("from", string(current)),
			zap.String("to", string(target)),
			zap.String("actor", actor.UserID),
			zap.String("actor_tier", decision.Current.String()),
			zap.String("required_tier", decision.Required.String()),
		)
		return nil, decision.Err()
	}
	if current == target {
		return &StatusChangeResult{Hotel: hotel.ToResponse(), Previous: current, Current: current}, nil
	}
	if err := s.require(actor, access.TransitionPermission(current, target)); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.hotelRepo.UpdateStatus(tx, hotelID, current, target, actor.UserID); err != nil {
			return err
		}
		return s.auditRepo.Record(tx, &model.HotelStatusAudit{
			HotelID:        hotelID,
			PreviousStatus: current,
			NewStatus:      target,
			ChangedBy:      actor.UserID,
			ActorRole:      actor.Role,
			Reason:         req.Reason,
		})
	})
	if errors.Is(err, repository.ErrStatusChanged) {
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("hotel status changed",
		zap.String("hotel_id", hotelID),
		zap.String("from", string(current)),
		zap.String("to", string(target)),
		zap.String("actor", actor.UserID),
	)

	hotel.Status = target
	hotel.UpdatedBy = actor.UserID
	return &StatusChangeResult{Hotel: hotel.ToResponse(), Previous: current, Current: target, Changed: true}, nil
}

// HardDelete physically removes the hotel and retires its users. The hotel's
// identifier stays reserved.
func (s *hotelService) HardDelete(ctx context.Context, actor Actor, hotelID string) error {
	if decision := s.guard.CanHardDelete(s.tier(actor)); !decision.Allowed {
		return decision.Err()
	}
	if err := s.require(actor, access.PermHotelHardDelete); err != nil {
		return err
	}
	hotel, err := s.load(ctx, actor, hotelID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.auditRepo.Record(tx, &model.HotelStatusAudit{
			HotelID:        hotelID,
			PreviousStatus: hotel.Status,
			NewStatus:      access.StatusDeleted,
			ChangedBy:      actor.UserID,
			ActorRole:      actor.Role,
			Reason:         "hard delete",
		}); err != nil {
			return err
		}
		if _, err := s.userRepo.SoftDeleteByHotel(tx, hotelID, actor.UserID); err != nil {
			return err
		}
		return s.hotelRepo.HardDelete(tx, hotelID)
	})
	if err != nil {
		return err
	}

	s.logger.Warn("hotel hard-deleted", zap.String("hotel_id", hotelID), zap.String("actor", actor.UserID))
	return nil
}

func (s *hotelService) History(ctx context.Context, actor Actor, hotelID string) ([]model.HotelStatusAudit, error) {
	if err := s.require(actor, access.PermAuditRead); err != nil {
		return nil, err
	}
	if err := s.scope(actor, hotelID); err != nil {
		return nil, err
	}
	return s.auditRepo.FindByHotel(ctx, hotelID)
}

// load fetches a hotel the actor may see.
func (s *hotelService) load(ctx context.Context, actor Actor, hotelID string) (*model.Hotel, error) {
	if err := s.scope(actor, hotelID); err != nil {
		return nil, err
	}
	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHotelNotFound
	}
	return hotel, err
}
