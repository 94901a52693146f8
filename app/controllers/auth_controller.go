package controllers

import (
	"net/http"

	"github.com/766ms/Glam-rent-v1/app/services"
	"github.com/766ms/Glam-rent-v1/pkg/bind"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Register(body.Name, body.Email, body.Password)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Login(body.Email, body.Password)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Success(w, map[string]any{
		"user":  user,
		"token": token,
	})
}
