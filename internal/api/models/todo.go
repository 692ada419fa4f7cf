package models

// TodoItem represents a todo entry owned by a single user.
type TodoItem struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Priority    int     `db:"priority" json:"priority"`
	Completed   bool    `db:"completed" json:"completed"`
	OwnerID     int64   `db:"owner_id" json:"owner_id"`
}

// TodoRequest carries the mutable fields for create and full-replace update.
// Validated in the service layer before anything touches the database.
type TodoRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Priority    int     `json:"priority" validate:"required,gte=1,lte=5"`
	Completed   bool    `json:"completed"`
}
