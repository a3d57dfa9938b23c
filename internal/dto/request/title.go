package request

// TitleRequest creates a title. Category and genres are referenced by slug,
// the way clients see them. Year range is validated in the service against
// the current year.
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genre,omitempty" validate:"dive,slug"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genre,omitempty" validate:"dive,slug"`
}

// TitleListFilter mirrors the supported list query parameters.
type TitleListFilter struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}
