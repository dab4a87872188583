package domain

import "fmt"

// DataIntegrityError reports a rating or tag that references a movie id
// with no movie record. Fatal at initialization: the engine must not run
// against partially-indexed data.
type DataIntegrityError struct {
	Table   string
	MovieID int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: %s references unknown movie %d", e.Table, e.MovieID)
}
