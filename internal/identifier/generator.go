package identifier

import (
	"context"
	"fmt"
	"strconv"
)

// Store is the persistence primitive the probes read from. Exists must see every
// identifier ever issued, including ones whose owner was soft- or hard-deleted.
type Store interface {
	Exists(ctx context.Context, id string) (bool, error)
	CountMatching(ctx context.Context, hotelID, role string) (int64, error)
}

const (
	FirstHotelID  int64 = 1000000001
	LastHotelID   int64 = 1999999999
	FirstVendorID int64 = 2000000001
	LastVendorID  int64 = 2999999999
)

// FormatVersion selects the user identifier allocator.
type FormatVersion string

const (
	// FormatLong probes for the smallest unused suffix per (hotel, role code).
	FormatLong FormatVersion = "long"
	// FormatLegacy numbers users COUNT(hotel, role)+1. It does not fill gaps and
	// can collide after deletes; kept for tables shared with the old vendor service.
	FormatLegacy FormatVersion = "legacy"
)

// ParseFormatVersion accepts "long" and "legacy".
func ParseFormatVersion(s string) (FormatVersion, error) {
	switch FormatVersion(s) {
	case FormatLong, "":
		return FormatLong, nil
	case FormatLegacy:
		return FormatLegacy, nil
	}
	return "", fmt.Errorf("identifier: unknown format version %q", s)
}

// UserIDAllocator produces the next candidate user identifier for a hotel and role.
type UserIDAllocator interface {
	NextUserID(ctx context.Context, hotelID, role string) (string, error)
	Format() FormatVersion
}

// Generator computes candidate identifiers by probing a Store. A candidate is
// only a proposal: nothing is reserved until the caller inserts it, so calls
// for the same scope must be serialized by the caller.
type Generator struct {
	store Store
}

func NewGenerator(store Store) *Generator {
	return &Generator{store: store}
}

// NextHotelID returns the first unused hotel identifier from 1000000001.
func (g *Generator) NextHotelID(ctx context.Context) (string, error) {
	return g.probeRange(ctx, FirstHotelID, LastHotelID)
}

// NextVendorID returns the first unused vendor identifier from 2000000001.
func (g *Generator) NextVendorID(ctx context.Context) (string, error) {
	return g.probeRange(ctx, FirstVendorID, LastVendorID)
}

func (g *Generator) probeRange(ctx context.Context, first, last int64) (string, error) {
	for candidate := first; candidate <= last; candidate++ {
		id := strconv.FormatInt(candidate, 10)
		taken, err := g.store.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrSequenceExhausted
}

// NextHotelUserID returns hotelID + role code + the smallest unused 4-digit
// suffix in 0001..9999 for that (hotel, role code) pair.
func (g *Generator) NextHotelUserID(ctx context.Context, hotelID, role string) (string, error) {
	code, err := RoleCode(role)
	if err != nil {
		return "", err
	}
	hotelID, err = NormalizeHotelID(hotelID)
	if err != nil {
		return "", err
	}

	for seq := 1; seq <= MaxSequence; seq++ {
		id := FormatUserID(hotelID, code, seq)
		taken, err := g.store.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: hotel %s role %q", ErrSequenceExhausted, hotelID, role)
}

// NextLegacyUserID numbers the user COUNT(rows for hotel and role) + 1.
func (g *Generator) NextLegacyUserID(ctx context.Context, hotelID, role string) (string, error) {
	code, err := RoleCode(role)
	if err != nil {
		return "", err
	}
	hotelID, err = NormalizeHotelID(hotelID)
	if err != nil {
		return "", err
	}

	n, err := g.store.CountMatching(ctx, hotelID, role)
	if err != nil {
		return "", err
	}
	if n+1 > MaxSequence {
		return "", fmt.Errorf("%w: hotel %s role %q", ErrSequenceExhausted, hotelID, role)
	}
	return FormatUserID(hotelID, code, int(n)+1), nil
}

// UserAllocator returns the allocator for the given format. Unknown formats
// get the long form.
func (g *Generator) UserAllocator(format FormatVersion) UserIDAllocator {
	if format == FormatLegacy {
		return legacyAllocator{g}
	}
	return longAllocator{g}
}

type longAllocator struct{ g *Generator }

func (a longAllocator) NextUserID(ctx context.Context, hotelID, role string) (string, error) {
	return a.g.NextHotelUserID(ctx, hotelID, role)
}

func (longAllocator) Format() FormatVersion { return FormatLong }

type legacyAllocator struct{ g *Generator }

func (a legacyAllocator) NextUserID(ctx context.Context, hotelID, role string) (string, error) {
	return a.g.NextLegacyUserID(ctx, hotelID, role)
}

func (legacyAllocator) Format() FormatVersion { return FormatLegacy }
