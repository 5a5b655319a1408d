package handler

import (
	"royalty-core/internal/handler/request"
	"royalty-core/internal/handler/response"
	"royalty-core/internal/service"
	"royalty-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the back-office session token.
const SessionCookie = "rc_session"

type AdminHandler struct {
	admins    *service.AdminService
	ttlSecs   int
	secureTLS bool
}

func NewAdminHandler(admins *service.AdminService, ttlSecs int, secureTLS bool) *AdminHandler {
	return &AdminHandler{admins: admins, ttlSecs: ttlSecs, secureTLS: secureTLS}
}

// Login godoc
// @Summary Administrator login
// @Description Verifies credentials and issues a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	token, admin, err := h.admins.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(SessionCookie, token, h.ttlSecs, "/", "", h.secureTLS, true)
	response.Success(c, gin.H{
		"id":    admin.ID,
		"name":  admin.Name,
		"email": admin.Email,
		"role":  admin.Role,
	})
}

// Logout godoc
// @Summary Administrator logout
// @Description Revokes the session and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err == nil && token != "" {
		if err := h.admins.Logout(c.Request.Context(), token); err != nil {
			response.Error(c, err)
			return
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", h.secureTLS, true)
	response.Success(c, nil)
}
