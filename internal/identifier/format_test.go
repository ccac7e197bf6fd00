package identifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	id := FormatUserID("1000000005", 3, 7)
	assert.Equal(t, "100000000530007", id)

	d, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, EntityHotel, d.EntityType)
	assert.Equal(t, "000000005", d.HotelNumber)
	assert.Equal(t, "1000000005", d.HotelID())
	assert.Equal(t, 3, d.RoleCode)
	assert.Equal(t, "Hotel Admin", d.RoleName())
	assert.Equal(t, 7, d.UserNumber)
}

func TestRoundTripFromGenerator(t *testing.T) {
	ctx := context.Background()
	for _, role := range []string{"GOD Admin", "Manager", "Support", "Tech Support", "Kitchen"} {
		id, err := NewGenerator(newMemStore()).NextHotelUserID(ctx, "1000000042", role)
		require.NoError(t, err)

		d, err := Parse(id)
		require.NoError(t, err, id)
		assert.Equal(t, "1000000042", d.HotelID())
		assert.Equal(t, role, d.RoleName())
		assert.Equal(t, 1, d.UserNumber)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"hotel id", "1000000001"},
		{"too short", "10000000013001"},
		{"too long", "10000000011300011"},
		{"letters", "1000000001300a1"},
		{"two digit code below ten", "1000000001050001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.in, fe.Input)
		})
	}
}

func TestParseUnknownRoleCode(t *testing.T) {
	d, err := Parse("100000000100001")
	require.NoError(t, err)
	assert.Equal(t, 0, d.RoleCode)
	assert.Equal(t, UnknownRole, d.RoleName())
}

func TestNormalizeHotelID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1000000001", "1000000001", false},
		{"10000005", "1000000005", false},
		{" 1234567890 ", "1234567890", false},
		{"42", "0000000042", false},
		{"0", SystemHotelID, false},
		{"", "", true},
		{"12345678901", "", true},
		{"10-00005", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeHotelID(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestRoleCodes(t *testing.T) {
	code, err := RoleCode("front desk")
	require.NoError(t, err)
	assert.Equal(t, 6, code)

	assert.Equal(t, "Maintenance", RoleNameFromCode(12))
	assert.Equal(t, UnknownRole, RoleNameFromCode(14))
	assert.True(t, HasRoleCode("Super Admin"))
	assert.False(t, HasRoleCode("Staff"))
	assert.True(t, IsSystemHotel("0000000000"))
	assert.False(t, IsSystemHotel("1000000001"))
}
