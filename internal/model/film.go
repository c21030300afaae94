package model

import "fmt"

// Film is a catalog entry.  Films are created by catalog seeding and are
// read-only as far as this service is concerned; the reservation flow only
// consults them to resolve a screening and validate seat bounds.
//
// Fields:
//  ID          – external identifier (UUID in seeded data).
//  Rating      – aggregate rating, e.g. 2.9.
//  Director    – director name.
//  Tags        – genre tags.
//  Title       – display title.
//  About       – one-line teaser.
//  Description – long description.
//  Image       – poster path served under /content/afisha.
//  Cover       – cover path served under /content/afisha.
type Film struct {
	ID          string   `json:"id" bson:"id"`
	Rating      float64  `json:"rating" bson:"rating"`
	Director    string   `json:"director" bson:"director"`
	Tags        []string `json:"tags" bson:"tags"`
	Title       string   `json:"title" bson:"title"`
	About       string   `json:"about" bson:"about"`
	Description string   `json:"description" bson:"description"`
	Image       string   `json:"image" bson:"image"`
	Cover       string   `json:"cover" bson:"cover"`
}

// Screening is a single showtime of a film with its own seating map.  The
// only mutable field in this subsystem is Taken, the set of seat keys
// already reserved; it only ever grows (there is no cancellation here).
type Screening struct {
	ID      string   `json:"id" bson:"id"`
	FilmID  string   `json:"-" bson:"-"`
	Daytime string   `json:"daytime" bson:"daytime"` // ISO-8601, as stored
	Hall    string   `json:"hall" bson:"hall"`
	Rows    int      `json:"rows" bson:"rows"`
	Seats   int      `json:"seats" bson:"seats"`
	Price   int      `json:"price" bson:"price"` // minor currency units
	Taken   []string `json:"taken" bson:"taken"`
}

// SeatKey encodes a seat position as "row:seat", the form used in the
// Taken set and in conflict reports.
func SeatKey(row, seat int) string {
	return fmt.Sprintf("%d:%d", row, seat)
}

// SeatInBounds reports whether the given position lies within the
// screening's seating map (rows and seats are both 1-based).
func (s *Screening) SeatInBounds(row, seat int) bool {
	return row >= 1 && row <= s.Rows && seat >= 1 && seat <= s.Seats
}

// TakenSet returns the taken seat keys as a set for conflict checks.
func (s *Screening) TakenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Taken))
	for _, k := range s.Taken {
		set[k] = struct{}{}
	}
	return set
}
