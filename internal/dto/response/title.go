package response

import (
	"media-review/internal/data/entity"
)

// TitleResponse carries the derived rating: nil (JSON null) when the title
// has no reviews yet, never zero.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description,omitempty"`
	Rating      *float64          `json:"rating"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Genres      []GenreResponse   `json:"genre"`
	CreatedAt   string            `json:"created_at,omitempty"`
}

func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Rating:      rating,
		Genres:      GenresToResponse(genres),
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	return resp
}
