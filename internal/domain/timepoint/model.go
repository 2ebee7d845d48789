package timepoint

import "time"

// TimePoint is one row from the ListDolphTimePoints procedure.
type TimePoint struct {
	Code        string    `json:"code"`
	Taken       time.Time `json:"taken"`
	Description *string   `json:"description,omitempty"`
}

// Image is one filename from the ListTimePointImgs procedure.
type Image struct {
	FileName string `json:"file_name"`
}
