package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/repository"
)

func TestVendorLifecycle(t *testing.T) {
	f := newFixture(t, identifier.FormatLong)
	ctx := context.Background()

	v, err := f.vendors.Create(ctx, superActor, &VendorRequest{Name: "Acme Linen", Email: "Sales@Acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "2000000001", v.ID)
	assert.Equal(t, "sales@acme.test", v.Email)
	assert.True(t, v.IsActive)

	_, err = f.vendors.Create(ctx, superActor, &VendorRequest{Name: "Acme Again", Email: "sales@acme.test"})
	assert.ErrorIs(t, err, ErrEmailExists)

	vendorID := v.ID
	h, err := f.hotels.Create(ctx, superActor, &CreateHotelRequest{Name: "Linen Hotel", VendorID: &vendorID})
	require.NoError(t, err)

	got, err := f.vendors.Get(ctx, superActor, v.ID)
	require.NoError(t, err)
	require.Len(t, got.Hotels, 1)
	assert.Equal(t, h.ID, got.Hotels[0].ID)

	inactive := false
	updated, err := f.vendors.Update(ctx, superActor, v.ID, &VendorRequest{Name: "Acme Linen Co", Email: "sales@acme.test", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Acme Linen Co", updated.Name)
	assert.False(t, updated.IsActive)

	list, err := f.vendors.List(ctx, godActor)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.vendors.Get(ctx, godActor, "2000000009")
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestVendorRequiresPermission(t *testing.T) {
	f := newFixture(t, identifier.FormatLong)
	h := f.mustHotel(t, "Grand")

	_, err := f.vendors.Create(context.Background(), hotelActor(h.ID, access.RoleHotelAdmin), &VendorRequest{Name: "Nope", Email: "nope@acme.test"})
	var denied *access.DeniedError
	assert.ErrorAs(t, err, &denied)
}

func TestVendorEmailLookupErrors(t *testing.T) {
	f := newFixture(t, identifier.FormatLong)
	ctx := context.Background()
	existing, err := f.vendors.Create(ctx, superActor, &VendorRequest{Name: "Acme Linen", Email: "sales@acme.test"})
	require.NoError(t, err)

	down := errors.New("connection reset by peer")
	repo := &vendorRepoHook{VendorRepository: repository.NewVendorRepo(f.db), findByEmailErr: down}
	vendors := NewVendorService(repo, f.allocator, f.evaluator, zap.NewNop())

	_, err = vendors.Create(ctx, superActor, &VendorRequest{Name: "Blue Soap", Email: "hello@bluesoap.test"})
	assert.ErrorIs(t, err, down)
	_, err = vendors.Update(ctx, superActor, existing.ID, &VendorRequest{Name: "Acme", Email: "new@acme.test"})
	assert.ErrorIs(t, err, down)

	// a lookup that misses leaves the unique index to catch the duplicate
	repo.findByEmailErr = gorm.ErrRecordNotFound
	_, err = vendors.Create(ctx, superActor, &VendorRequest{Name: "Acme Twin", Email: "sales@acme.test"})
	assert.ErrorIs(t, err, ErrEmailExists)
}
