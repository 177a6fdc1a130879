package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/validators"
)

// Accounts is the local account registry behind the identity provider.
type Accounts interface {
	identity.Verifier
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	IssueToken(uid, email string) (string, error)
}

type AuthHandler struct {
	accounts Accounts
}

func NewAuthHandler(accounts Accounts) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// --------- Requests ---------

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmail(email) {
		httperr.BadRequest(c, "invalid_email", "Invalid e-mail address.")
		return
	}

	uid, err := h.accounts.Register(c.Request.Context(), email, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	token, err := h.accounts.IssueToken(uid, email)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"uid":   uid,
		"email": email,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	tok, err := h.accounts.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uid":   tok.UID,
		"email": tok.Email,
		"roles": tok.Claims.Roles(),
	})
}
