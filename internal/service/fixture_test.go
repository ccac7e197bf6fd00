package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/model"
	"go-hotel-pms/internal/repository"
	"go-hotel-pms/internal/testutil"
	"go-hotel-pms/pkg/jwt"
	"go-hotel-pms/pkg/lock"
)

var (
	godActor   = Actor{UserID: "000000000010001", HotelID: identifier.SystemHotelID, Role: access.RoleGodAdmin}
	superActor = Actor{UserID: "000000000020001", HotelID: identifier.SystemHotelID, Role: access.RoleSuperAdmin}
)

func hotelActor(hotelID, role string) Actor {
	a := Actor{UserID: hotelID + "90001", HotelID: hotelID, Role: role}
	if d, ok := access.ParseDepartment(role); ok {
		a.Department = string(d)
	}
	return a
}

type fixture struct {
	db        *gorm.DB
	ids       repository.IdentifierRepository
	hotelRepo repository.HotelRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	evaluator *access.Evaluator
	allocator *Allocator
	signer    *jwt.Signer

	hotels    HotelService
	staff     StaffService
	vendors   VendorService
	auth      AuthService
	dashboard DashboardService
}

func newFixture(t *testing.T, format identifier.FormatVersion) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	logger := zap.NewNop()

	f := &fixture{
		db:        db,
		ids:       repository.NewIdentifierRepo(db),
		hotelRepo: repository.NewHotelRepo(db),
		userRepo:  repository.NewUserRepo(db),
		auditRepo: repository.NewAuditRepo(db),
		evaluator: access.NewEvaluator(access.NewCatalog(), logger),
		signer:    jwt.NewSigner("test-secret", "hotel-pms-test", time.Hour),
	}
	vendorRepo := repository.NewVendorRepo(db)
	f.allocator = NewAllocator(db, f.ids, lock.NewLocalLocker(), 3, time.Second, logger)

	f.hotels = NewHotelService(db, f.hotelRepo, vendorRepo, f.userRepo, f.auditRepo, f.allocator, f.evaluator, logger)
	f.staff = NewStaffService(f.hotelRepo, f.userRepo, f.allocator, f.evaluator, format, logger)
	f.vendors = NewVendorService(vendorRepo, f.allocator, f.evaluator, logger)
	f.auth = NewAuthService(f.userRepo, f.signer, f.evaluator, 30*time.Minute, logger)
	f.dashboard = NewDashboardService(f.hotelRepo, f.userRepo, f.evaluator)
	return f
}

func (f *fixture) mustHotel(t *testing.T, name string) *model.Hotel {
	t.Helper()
	h, err := f.hotels.Create(context.Background(), godActor, &CreateHotelRequest{Name: name, City: "Lisbon"})
	require.NoError(t, err)
	return h
}

func (f *fixture) mustUser(t *testing.T, actor Actor, hotelID, role, email string) *model.HotelUser {
	t.Helper()
	u, err := f.staff.Create(context.Background(), actor, hotelID, &CreateStaffRequest{
		Email: email, Password: "password123", FullName: role + " user", Role: role,
	})
	require.NoError(t, err)
	return u
}

// hotelRepoHook runs afterFind once, right after the first FindByID returns,
// to interleave a concurrent write between a service's read and its write.
type hotelRepoHook struct {
	repository.HotelRepository
	once      sync.Once
	afterFind func()
}

func (r *hotelRepoHook) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	hotel, err := r.HotelRepository.FindByID(ctx, id)
	r.once.Do(r.afterFind)
	return hotel, err
}

// userRepoHook interleaves writes the same way for user lookups. With
// hideEmails set, EmailExists always reports a free address.
type userRepoHook struct {
	repository.UserRepository
	once       sync.Once
	afterFind  func()
	hideEmails bool
}

func (r *userRepoHook) fire() {
	if r.afterFind != nil {
		r.once.Do(r.afterFind)
	}
}

func (r *userRepoHook) FindByEmail(ctx context.Context, email string) (*model.HotelUser, error) {
	user, err := r.UserRepository.FindByEmail(ctx, email)
	r.fire()
	return user, err
}

func (r *userRepoHook) FindByID(ctx context.Context, id string) (*model.HotelUser, error) {
	user, err := r.UserRepository.FindByID(ctx, id)
	r.fire()
	return user, err
}

func (r *userRepoHook) EmailExists(ctx context.Context, email string) (bool, error) {
	if r.hideEmails {
		return false, nil
	}
	return r.UserRepository.EmailExists(ctx, email)
}

// vendorRepoHook replaces FindByEmail with a canned result.
type vendorRepoHook struct {
	repository.VendorRepository
	findByEmailErr error
}

func (r *vendorRepoHook) FindByEmail(context.Context, string) (*model.Vendor, error) {
	return nil, r.findByEmailErr
}
