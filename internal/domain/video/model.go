package video

// Video is the denormalized read model served from the V_Videos view,
// which joins tblvideos to tblVidCat for the category name.
type Video struct {
	ID           int64   `db:"vid_id" json:"id"`
	Description  string  `db:"vid_description" json:"description"`
	CategoryID   int64   `db:"cat_id" json:"category_id"`
	CategoryName string  `db:"cat_name" json:"category_name"`
	FileName     string  `db:"file_name" json:"file_name"`
	Details      *string `db:"details" json:"details,omitempty"`
}

// Record is a raw tblvideos row, fetched for editing.
type Record struct {
	ID          int64   `db:"vid_id" json:"id"`
	Description string  `db:"vid_description" json:"description"`
	CategoryID  int64   `db:"cat_id" json:"category_id"`
	FileName    string  `db:"file_name" json:"file_name"`
	Details     *string `db:"details" json:"details,omitempty"`
}

// Update is a partial update: only non-nil fields are written.
type Update struct {
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	FileName    *string `json:"file_name,omitempty"`
	Details     *string `json:"details,omitempty"`
}

// IsEmpty reports whether the update names no fields at all.
func (u Update) IsEmpty() bool {
	return u.Description == nil && u.CategoryID == nil && u.FileName == nil && u.Details == nil
}

// Category is a tblVidCat row.
type Category struct {
	ID   int64  `db:"cat_id" json:"id"`
	Name string `db:"cat_name" json:"name"`
}
