package user

import "time"

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                 string    `json:"id"`
	RegistrationNumber string    `json:"registration_number"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		RegistrationNumber: u.RegistrationNumber,
		Name:               u.Name,
		Role:               string(u.Role),
		CreatedAt:          u.CreatedAt,
	}
}
