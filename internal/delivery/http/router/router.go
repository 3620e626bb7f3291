// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"walkies/internal/delivery/http/middleware"
	"walkies/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	PetHandler          *handler.PetHandler
	WalkHandler         *handler.WalkHandler
	GamificationHandler *handler.GamificationHandler
	AdminHandler        *handler.AdminHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	petHandler          *handler.PetHandler
	walkHandler         *handler.WalkHandler
	gamificationHandler *handler.GamificationHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		petHandler:          params.PetHandler,
		walkHandler:         params.WalkHandler,
		gamificationHandler: params.GamificationHandler,
		adminHandler:        params.AdminHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/verify-token", r.userHandler.VerifyToken)
		authGroup.POST("/forgot-password", r.userHandler.ForgotPassword)
	}

	// User routes that require authentication
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
		userGroup.POST("/profile/upload", r.userHandler.UploadProfilePicture)
		userGroup.GET("/dashboard", r.userHandler.Dashboard)

		userGroup.POST("/pets", r.petHandler.Create)
		userGroup.GET("/pets", r.petHandler.List)
		userGroup.GET("/pets/:petId", r.petHandler.Get)
		userGroup.PUT("/pets/:petId", r.petHandler.Update)
		userGroup.DELETE("/pets/:petId", r.petHandler.Delete)
		userGroup.POST("/pets/:petId/upload", r.petHandler.UploadPicture)
	}

	// Walk session routes
	walkGroup := e.Group("/walks")
	walkGroup.Use(r.authMiddleware.Authenticate)
	{
		walkGroup.POST("/start", r.walkHandler.Start)
		walkGroup.PUT("/:walkId/update", r.walkHandler.Update)
		walkGroup.POST("/:walkId/finish", r.walkHandler.Finish)
		walkGroup.GET("/active", r.walkHandler.Active)
		walkGroup.GET("/history", r.walkHandler.History)
		walkGroup.GET("/:walkId", r.walkHandler.Details)
	}

	// Badge, ranking and challenge routes
	gamificationGroup := e.Group("/gamification")
	gamificationGroup.Use(r.authMiddleware.Authenticate)
	{
		gamificationGroup.GET("/badges", r.gamificationHandler.Badges)
		gamificationGroup.GET("/my-badges", r.gamificationHandler.MyBadges)
		gamificationGroup.GET("/ranking", r.gamificationHandler.Ranking)
		gamificationGroup.GET("/leaderboard", r.gamificationHandler.Leaderboard)
		gamificationGroup.GET("/challenges", r.gamificationHandler.Challenges)
	}

	// Administration routes that require authentication and the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:userId", r.adminHandler.UpdateUser)
		adminGroup.DELETE("/users/:userId", r.adminHandler.DeleteUser)
		adminGroup.GET("/pets", r.adminHandler.ListPets)
		adminGroup.DELETE("/pets/:petId", r.adminHandler.DeletePet)
		adminGroup.GET("/walks/stuck", r.adminHandler.ListStuckWalks)
		adminGroup.POST("/walks/:walkId/complete", r.adminHandler.ForceCompleteWalk)
		adminGroup.DELETE("/walks/:walkId", r.adminHandler.DeleteWalk)
	}
}
