package identifier

import (
	"fmt"
	"strconv"
	"strings"
)

// Entity-type digits, the leading digit of every 10-digit tenant ID.
const (
	EntitySystem = 0
	EntityHotel  = 1
	EntityVendor = 2
)

const (
	// HotelIDLength is the width of hotel and vendor identifiers.
	HotelIDLength = 10
	// LegacyHotelIDLength is the older "1" + 7 digits hotel form, read-only.
	LegacyHotelIDLength = 8
	// SequenceWidth is the zero-padded user sequence width.
	SequenceWidth = 4
	MaxSequence   = 9999

	// UserIDLength is the user identifier width for single-digit role codes;
	// role codes 10-13 make it one digit longer.
	UserIDLength = HotelIDLength + 1 + SequenceWidth

	// SystemHotelID is the reserved tenant of cross-tenant (system) admins.
	SystemHotelID = "0000000000"
)

// IsSystemHotel reports whether hotelID is the cross-tenant sentinel.
func IsSystemHotel(hotelID string) bool {
	return hotelID == SystemHotelID
}

// NormalizeHotelID returns the canonical 10-digit form of a hotel ID. Legacy
// 8-digit IDs ("1" + 7 digits) are widened to "1" + "00" + 7 digits; other
// shorter numeric IDs are left-padded with zeros.
func NormalizeHotelID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &FormatError{Input: id, Reason: "empty hotel id"}
	}
	if !isDigits(id) {
		return "", &FormatError{Input: id, Reason: "hotel id must be numeric"}
	}
	switch {
	case len(id) == HotelIDLength:
		return id, nil
	case len(id) == LegacyHotelIDLength && id[0] == '1':
		return id[:1] + "00" + id[1:], nil
	case len(id) < HotelIDLength:
		return strings.Repeat("0", HotelIDLength-len(id)) + id, nil
	}
	return "", &FormatError{Input: id, Reason: fmt.Sprintf("hotel id longer than %d digits", HotelIDLength)}
}

// FormatUserID concatenates hotel ID, role code and zero-padded sequence.
func FormatUserID(hotelID string, roleCode, seq int) string {
	return hotelID + strconv.Itoa(roleCode) + fmt.Sprintf("%0*d", SequenceWidth, seq)
}

// Decoded is a user identifier split into its fields.
type Decoded struct {
	EntityType  int    `json:"entity_type"`
	HotelNumber string `json:"hotel_number"`
	RoleCode    int    `json:"role_code"`
	UserNumber  int    `json:"user_number"`
}

// HotelID re-joins the entity digit and hotel number.
func (d Decoded) HotelID() string {
	return strconv.Itoa(d.EntityType) + d.HotelNumber
}

// RoleName resolves the embedded role code; UnknownRole when not in the table.
func (d Decoded) RoleName() string {
	return RoleNameFromCode(d.RoleCode)
}

// Parse decodes a user identifier at fixed offsets:
//
//	[0]        entity-type digit
//	[1:10]     hotel number (hotel ID without its leading digit)
//	[10:n-4]   role code, one digit, or two for codes 10-13
//	[n-4:]     user number
func Parse(id string) (Decoded, error) {
	n := len(id)
	if n != UserIDLength && n != UserIDLength+1 {
		return Decoded{}, &FormatError{Input: id, Reason: fmt.Sprintf("length %d, want %d or %d", n, UserIDLength, UserIDLength+1)}
	}
	if !isDigits(id) {
		return Decoded{}, &FormatError{Input: id, Reason: "non-digit characters"}
	}

	roleCode, _ := strconv.Atoi(id[HotelIDLength : n-SequenceWidth])
	if n == UserIDLength+1 && roleCode < 10 {
		return Decoded{}, &FormatError{Input: id, Reason: "two-digit role code below 10"}
	}
	userNumber, _ := strconv.Atoi(id[n-SequenceWidth:])

	return Decoded{
		EntityType:  int(id[0] - '0'),
		HotelNumber: id[1:HotelIDLength],
		RoleCode:    roleCode,
		UserNumber:  userNumber,
	}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
