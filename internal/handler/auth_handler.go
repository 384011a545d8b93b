package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chronotes/chronotes/internal/pkg/errcode"
	"github.com/chronotes/chronotes/internal/pkg/response"
	"github.com/chronotes/chronotes/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email      string `json:"email"`
	VerifyCode string `json:"verifyCode"`
	Password   string `json:"password"`
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type updateProfileRequest struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		response.Error(c, errcode.ErrInvalid, "email and password are required")
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.VerifyCode == "" || req.Password == "" {
		response.Error(c, errcode.ErrInvalid, "email, verifyCode and password are required")
		return
	}
	result, err := h.auth.Register(c.Request.Context(), req.Email, req.VerifyCode, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AuthHandler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		response.Error(c, errcode.ErrInvalid, "email is required")
		return
	}
	if err := h.auth.SendVerificationCode(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessMsg(c, "verification code sent, check your inbox")
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Profile(c.Request.Context(), getEmail(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		response.Error(c, errcode.ErrInvalid, "username is required")
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), getEmail(c), req.Username, req.AvatarURL, req.Bio)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}
