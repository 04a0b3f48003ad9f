package http

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *SignupRequest) Validate() error {
	return validate.Struct(r)
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"is_active"`
}

type ItemRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gte=0"`
}

func (r *ItemRequest) Validate() error {
	return validate.Struct(r)
}

type ItemResponse struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}
