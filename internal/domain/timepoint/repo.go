package timepoint

import "context"

// Repository lists a patient's timepoints and their image filenames from
// the Dolphin platform. Both are read-only, ordered by the procedures
// themselves.
type Repository interface {
	List(ctx context.Context, personID int64) ([]*TimePoint, error)
	ListImages(ctx context.Context, personID int64, code string) ([]*Image, error)
}
