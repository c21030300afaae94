package repository

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/film-afisha/backend/internal/model"
)

// filmsCollection is the collection holding film documents with their
// embedded screenings, matching the seeded data shape.
const filmsCollection = "films"

// filmDocument is the stored shape: film fields plus an embedded
// screening array under "schedule".
type filmDocument struct {
	model.Film `bson:",inline"`
	Schedule   []model.Screening `bson:"schedule"`
}

// MongoFilmRepo is the document adapter.  Each film is one document with
// its screenings embedded; the taken set is an array inside the matched
// screening element.  Atomicity of ReserveSeats relies on MongoDB applying
// a single UpdateOne filter+update as one indivisible operation.
type MongoFilmRepo struct {
	films *mongo.Collection
}

// NewMongoFilmRepo returns a MongoFilmRepo over the given database.
func NewMongoFilmRepo(db *mongo.Database) *MongoFilmRepo {
	return &MongoFilmRepo{films: db.Collection(filmsCollection)}
}

// ListFilms returns every film ordered by id.  The embedded schedule is
// not decoded here; catalog listings only need film metadata.
func (r *MongoFilmRepo) ListFilms(ctx context.Context) ([]model.Film, error) {
	cur, err := r.films.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	films := make([]model.Film, 0)
	for cur.Next(ctx) {
		var f model.Film
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		if f.Tags == nil {
			f.Tags = []string{}
		}
		films = append(films, f)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

// GetFilmAndScreening resolves the pair or reports which half is missing.
func (r *MongoFilmRepo) GetFilmAndScreening(ctx context.Context, filmID, screeningID string) (*model.Film, *model.Screening, error) {
	doc, err := r.findFilm(ctx, filmID)
	if err != nil {
		return nil, nil, err
	}
	for i := range doc.Schedule {
		if doc.Schedule[i].ID == screeningID {
			s := doc.Schedule[i]
			s.FilmID = filmID
			if s.Taken == nil {
				s.Taken = []string{}
			}
			return &doc.Film, &s, nil
		}
	}
	return &doc.Film, nil, ErrScreeningNotFound
}

// ListScreenings returns the film's screenings ordered by daytime
// ascending.  Daytimes are stored as ISO-8601 strings, so lexicographic
// order is chronological order.
func (r *MongoFilmRepo) ListScreenings(ctx context.Context, filmID string) ([]model.Screening, error) {
	doc, err := r.findFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}
	items := make([]model.Screening, 0, len(doc.Schedule))
	for _, s := range doc.Schedule {
		s.FilmID = filmID
		if s.Taken == nil {
			s.Taken = []string{}
		}
		items = append(items, s)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Daytime < items[j].Daytime })
	return items, nil
}

// ReserveSeats adds the seat keys to the matched screening in one
// conditional UpdateOne.  The $elemMatch filter requires the screening to
// have none of the requested keys taken ($nin), so the $addToSet either
// applies to a conflict-free screening or matches nothing at all; a racing
// caller with overlapping keys cannot also match.  ModifiedCount zero means
// conflict or missing screening, told apart by a re-read.
func (r *MongoFilmRepo) ReserveSeats(ctx context.Context, filmID, screeningID string, seatKeys []string) (ReserveResult, error) {
	unique := uniqueKeys(seatKeys)
	if len(unique) == 0 {
		return ReserveResult{Reserved: true}, nil
	}

	filter := bson.M{
		"id": filmID,
		"schedule": bson.M{"$elemMatch": bson.M{
			"id":    screeningID,
			"taken": bson.M{"$nin": unique},
		}},
	}
	update := bson.M{"$addToSet": bson.M{"schedule.$.taken": bson.M{"$each": unique}}}

	res, err := r.films.UpdateOne(ctx, filter, update)
	if err != nil {
		return ReserveResult{}, err
	}
	if res.ModifiedCount > 0 {
		return ReserveResult{Reserved: true}, nil
	}

	// Guard failed or screening missing; re-read to report exact conflicts.
	_, s, err := r.GetFilmAndScreening(ctx, filmID, screeningID)
	if errors.Is(err, ErrFilmNotFound) || errors.Is(err, ErrScreeningNotFound) {
		return ReserveResult{Reserved: false, Conflicts: unique}, nil
	}
	if err != nil {
		return ReserveResult{}, err
	}
	return ReserveResult{Reserved: false, Conflicts: intersect(s.Taken, unique)}, nil
}

func (r *MongoFilmRepo) findFilm(ctx context.Context, filmID string) (*filmDocument, error) {
	var doc filmDocument
	err := r.films.FindOne(ctx, bson.M{"id": filmID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrFilmNotFound
	}
	if err != nil {
		return nil, err
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	return &doc, nil
}
