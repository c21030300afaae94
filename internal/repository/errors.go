// Package repository defines error values shared by the storage adapters.
// These sentinels let the service layer distinguish a missing film from a
// missing screening without inspecting backend-specific errors such as
// sql.ErrNoRows or mongo.ErrNoDocuments, which must never leak upward.
package repository

import "errors"

// ErrFilmNotFound is returned when no film with the requested id exists.
var ErrFilmNotFound = errors.New("film not found")

// ErrScreeningNotFound is returned when the film exists but has no
// screening with the requested id.
var ErrScreeningNotFound = errors.New("screening not found")
