package dto

// CreateCategoryRequest adds a task category.
type CreateCategoryRequest struct {
	Category  string `json:"category" binding:"required,min=3,max=50"`
	TimeEntry string `json:"time_entry" binding:"required,oneof='Open Entry' 'Close Entry'"`
}

// UpdateCategoryRequest renames a category or changes its entry mode.
type UpdateCategoryRequest struct {
	ID        string  `json:"id" binding:"required,objectid"`
	Category  *string `json:"category" binding:"omitempty,min=3,max=50"`
	TimeEntry *string `json:"time_entry" binding:"omitempty,oneof='Open Entry' 'Close Entry'"`
}
