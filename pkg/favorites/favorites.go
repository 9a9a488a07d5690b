// Package favorites stores named spacing presets.
//
// A favorite records the live inputs of a session (front and back spacing,
// the spacing convention and nut clearance) so that a shelf can be
// reproduced later. Geometry is not stored; it comes from configuration.
//
// Three backends implement [Store]:
//   - file: a single JSON file under the user config directory (CLI default)
//   - redis: one hash, one field per favorite
//   - mongo: one document per favorite
//
// Use [Open] to pick a backend from configuration:
//
//	store, err := favorites.Open(ctx, cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	fav, err := store.Save(ctx, favorites.New("kitchen", spacing))
package favorites

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/fixture"
)

// ErrNotFound is returned for unknown IDs.
var ErrNotFound = errs.New(errs.ErrCodeNotFound, "favorite not found")

// Favorite is one saved preset.
type Favorite struct {
	ID        string          `json:"id" bson:"_id"`
	Label     string          `json:"label,omitempty" bson:"label,omitempty"`
	Spacing   fixture.Spacing `json:"spacing" bson:"spacing"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// New returns a favorite with a fresh ID.
func New(label string, s fixture.Spacing) Favorite {
	return Favorite{
		ID:        uuid.NewString(),
		Label:     label,
		Spacing:   s,
		CreatedAt: now(),
	}
}

// now is truncated to milliseconds, the precision every backend keeps.
func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// Store persists favorites.
type Store interface {
	// List returns all favorites, oldest first.
	List(ctx context.Context) ([]Favorite, error)

	// Get returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (Favorite, error)

	// Save inserts f, or replaces the favorite with the same ID. A missing
	// ID or timestamp is filled in; the stored value is returned.
	Save(ctx context.Context, f Favorite) (Favorite, error)

	// Delete returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error

	Close() error
}

// prepare fills in defaults and validates a favorite before saving.
func prepare(f Favorite) (Favorite, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	} else if _, err := uuid.Parse(f.ID); err != nil {
		return f, errs.Wrap(errs.ErrCodeInvalidInput, err, "favorite id %q", f.ID)
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now()
	}
	if err := f.Spacing.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

func notFound(id string) error { return fmt.Errorf("%w: %s", ErrNotFound, id) }

func sortByCreated(favs []Favorite) {
	slices.SortStableFunc(favs, func(a, b Favorite) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Find resolves ref as a full ID, a unique ID prefix or an exact label.
func Find(ctx context.Context, s Store, ref string) (Favorite, error) {
	if ref == "" {
		return Favorite{}, errs.New(errs.ErrCodeInvalidInput, "empty favorite reference")
	}
	if _, err := uuid.Parse(ref); err == nil {
		return s.Get(ctx, ref)
	}

	all, err := s.List(ctx)
	if err != nil {
		return Favorite{}, err
	}
	var matches []Favorite
	for _, f := range all {
		if f.Label == ref || strings.HasPrefix(f.ID, ref) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return Favorite{}, notFound(ref)
	case 1:
		return matches[0], nil
	default:
		return Favorite{}, errs.New(errs.ErrCodeInvalidInput, "%q matches %d favorites", ref, len(matches))
	}
}
