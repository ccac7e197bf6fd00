package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/model"
	"go-hotel-pms/internal/repository"
	"go-hotel-pms/pkg/database"
	"go-hotel-pms/pkg/lock"
)

// Lock keys serializing each allocation scope.
const (
	HotelLockKey  = "idgen:hotel"
	VendorLockKey = "idgen:vendor"
)

// UserLockKey is the allocation scope of one (hotel, role code) sequence.
func UserLockKey(hotelID string, roleCode int) string {
	return fmt.Sprintf("idgen:user:%s:%d", hotelID, roleCode)
}

// errIdentifierTaken marks a registry conflict, the only collision worth a
// fresh probe.
var errIdentifierTaken = errors.New("identifier already issued")

// Allocation describes one identifier to hand out.
type Allocation struct {
	LockKey  string
	Kind     model.IdentifierKind
	Scope    string
	IssuedBy string
	// Next proposes a candidate using a generator bound to the transaction.
	Next func(ctx context.Context, gen *identifier.Generator) (string, error)
}

// Allocator serializes probes per scope and reserves each identifier in
// issued_identifiers. A duplicate reservation is retried with a fresh probe.
type Allocator struct {
	db      *gorm.DB
	ids     repository.IdentifierRepository
	locker  lock.Locker
	retries int
	lockTTL time.Duration
	logger  *zap.Logger
}

func NewAllocator(db *gorm.DB, ids repository.IdentifierRepository, locker lock.Locker, retries int, lockTTL time.Duration, logger *zap.Logger) *Allocator {
	if retries < 1 {
		retries = 1
	}
	if lockTTL <= 0 {
		lockTTL = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{db: db, ids: ids, locker: locker, retries: retries, lockTTL: lockTTL, logger: logger}
}

// Create allocates an identifier and calls persist with it inside the same
// transaction as the registry insert. Both commit or neither does. Errors from
// persist, unique violations included, are returned without a retry.
func (a *Allocator) Create(ctx context.Context, alloc Allocation, persist func(tx *gorm.DB, id string) error) (string, error) {
	release, err := a.locker.Acquire(ctx, alloc.LockKey, a.lockTTL)
	if err != nil {
		return "", fmt.Errorf("allocate %s: %w", alloc.Kind, err)
	}
	defer release()

	for attempt := 1; attempt <= a.retries; attempt++ {
		var id string
		err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			candidate, err := alloc.Next(ctx, identifier.NewGenerator(a.ids.WithTx(tx)))
			if err != nil {
				return err
			}
			if err := a.ids.Reserve(tx, candidate, alloc.Kind, alloc.Scope, alloc.IssuedBy); err != nil {
				if database.IsDuplicateKey(err) {
					return fmt.Errorf("%w: %v", errIdentifierTaken, err)
				}
				return err
			}
			if err := persist(tx, candidate); err != nil {
				return err
			}
			id = candidate
			return nil
		})
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, errIdentifierTaken) {
			return "", err
		}
		a.logger.Warn("identifier collision, retrying",
			zap.String("kind", string(alloc.Kind)),
			zap.String("scope", alloc.Scope),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return "", ErrAllocationConflict
}
