package repository

import (
	"context"

	"github.com/film-afisha/backend/internal/model"
)

// ReserveResult is the outcome of an atomic seat reservation.  When
// Reserved is false, Conflicts lists every requested seat key that was
// already taken at commit time; it is empty when the failure had another
// cause (the caller then reports a generic reservation failure).
type ReserveResult struct {
	Reserved  bool
	Conflicts []string
}

// FilmRepository is the storage port shared by the document and relational
// adapters.  Business logic depends only on this contract, never on the
// storage shape; which adapter is active is decided once at startup by
// NewStore.
type FilmRepository interface {
	// ListFilms returns the full catalog ordered by film id.
	ListFilms(ctx context.Context) ([]model.Film, error)

	// GetFilmAndScreening resolves a (film, screening) pair.  It returns
	// ErrFilmNotFound or ErrScreeningNotFound when either half is missing.
	GetFilmAndScreening(ctx context.Context, filmID, screeningID string) (*model.Film, *model.Screening, error)

	// ListScreenings returns the film's screenings ordered by daytime
	// ascending.  A film without screenings yields an empty slice.
	ListScreenings(ctx context.Context, filmID string) ([]model.Screening, error)

	// ReserveSeats adds all seat keys to the screening's taken set in a
	// single conditional write.  Either every key is added and
	// Reserved=true, or none is and the overlapping keys are reported;
	// two concurrent callers racing on overlapping seats cannot both
	// succeed.  An unknown (film, screening) pair reports every requested
	// key as conflicting since nothing could be verified.
	ReserveSeats(ctx context.Context, filmID, screeningID string, seatKeys []string) (ReserveResult, error)
}

// uniqueKeys drops duplicate seat keys preserving first-seen order.  Both
// adapters normalize their input with it so a client repeating a key inside
// one call cannot trip the overlap guard against itself.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// intersect returns the requested keys present in taken, in request order.
func intersect(taken []string, requested []string) []string {
	set := make(map[string]struct{}, len(taken))
	for _, k := range taken {
		set[k] = struct{}{}
	}
	var conflicts []string
	for _, k := range requested {
		if _, ok := set[k]; ok {
			conflicts = append(conflicts, k)
		}
	}
	return conflicts
}
