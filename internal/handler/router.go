package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chronotes/chronotes/internal/middleware"
	"github.com/chronotes/chronotes/internal/pkg/jwt"
)

type RouterDeps struct {
	Auth   *AuthHandler
	Issuer *jwt.Issuer
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/send-code", deps.Auth.SendCode)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.Issuer))
	authGroup.GET("/auth/me", deps.Auth.Me)
	authGroup.PUT("/auth/profile", deps.Auth.UpdateProfile)
}
