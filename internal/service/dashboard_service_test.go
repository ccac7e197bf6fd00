package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t, identifier.FormatLong)
	ctx := context.Background()
	grand := f.mustHotel(t, "Grand")
	plaza := f.mustHotel(t, "Plaza")
	f.mustUser(t, godActor, grand.ID, access.RoleManager, "mgr@grand.test")
	f.mustUser(t, godActor, grand.ID, string(access.DeptKitchen), "cook@grand.test")
	f.mustUser(t, godActor, plaza.ID, access.RoleManager, "mgr@plaza.test")
	_, err := f.hotels.ChangeStatus(ctx, godActor, plaza.ID, &ChangeStatusRequest{Status: "inactive"})
	require.NoError(t, err)

	all, err := f.dashboard.GetDashboardStats(ctx, godActor)
	require.NoError(t, err)
	assert.Empty(t, all.HotelID)
	assert.Equal(t, int64(2), all.TotalHotels)
	assert.Equal(t, int64(1), all.HotelsByStatus[access.StatusInactive])
	assert.Equal(t, int64(3), all.TotalUsers)
	assert.Equal(t, int64(2), all.UsersByRole[access.RoleManager])

	mine, err := f.dashboard.GetDashboardStats(ctx, hotelActor(grand.ID, access.RoleManager))
	require.NoError(t, err)
	assert.Equal(t, grand.ID, mine.HotelID)
	assert.Equal(t, int64(1), mine.TotalHotels)
	assert.Equal(t, int64(2), mine.TotalUsers)

	_, err = f.dashboard.GetDashboardStats(ctx, hotelActor(grand.ID, string(access.DeptKitchen)))
	var denied *access.DeniedError
	assert.ErrorAs(t, err, &denied)
}
