package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/amazoniatrade/marketplace/internal/hash"
	"github.com/amazoniatrade/marketplace/internal/middleware/auth"
	"github.com/amazoniatrade/marketplace/internal/models"
	"github.com/amazoniatrade/marketplace/internal/mykafka"
	"github.com/amazoniatrade/marketplace/internal/store"
	"github.com/amazoniatrade/marketplace/internal/token"
)

type AuthHandler struct {
	Users    *store.UserStore
	Tokens   *token.Service
	Producer *mykafka.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "name, email and password are required")
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() {
		return fail(c, http.StatusBadRequest, "unknown role")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not register user")
	}

	user, err := h.Users.Create(c.Request().Context(), req.Name, req.Email, pwHash, role)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return fail(c, http.StatusBadRequest, "email already registered")
		}
		return fail(c, http.StatusInternalServerError, "could not register user")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "message": "user registered"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, "could not log in")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return fail(c, http.StatusBadRequest, "wrong password")
	}

	tok, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create token")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"message": "login successful",
		"token":   tok,
		"userId":  user.ID,
		"role":    user.Role,
		"name":    user.Name,
	})
}

// Me returns the authenticated user, password hash excluded by the model's
// json tags.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}

	user, err := h.Users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load user")
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user})
}

// GetUser is a public profile lookup by id.
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	user, err := h.Users.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load user")
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user})
}
