// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/router/handler"
	"coderr/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ProfileHandler  *handler.ProfileHandler
	OfferHandler    *handler.OfferHandler
	OrderHandler    *handler.OrderHandler
	ReviewHandler   *handler.ReviewHandler
	BaseInfoHandler *handler.BaseInfoHandler
	UploadHandler   *handler.UploadHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	profileHandler  *handler.ProfileHandler
	offerHandler    *handler.OfferHandler
	orderHandler    *handler.OrderHandler
	reviewHandler   *handler.ReviewHandler
	baseInfoHandler *handler.BaseInfoHandler
	uploadHandler   *handler.UploadHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		profileHandler:  params.ProfileHandler,
		offerHandler:    params.OfferHandler,
		orderHandler:    params.OrderHandler,
		reviewHandler:   params.ReviewHandler,
		baseInfoHandler: params.BaseInfoHandler,
		uploadHandler:   params.UploadHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Open routes
	{
		api.POST("/registration", r.authHandler.Register)
		api.POST("/login", r.authHandler.Login)

		api.GET("/offers", r.offerHandler.ListOffers)
		api.GET("/offers/:id", r.offerHandler.GetOffer)
		api.GET("/offers/:id/qr", r.offerHandler.GenerateOfferQR)

		api.GET("/base-info", r.baseInfoHandler.GetBaseInfo)
	}

	authenticate := r.authMiddleware.Authenticate

	// Offer mutations: creation needs a business account, ownership of
	// update/delete is enforced by the policy layer
	api.POST("/offers", r.offerHandler.CreateOffer, authenticate, r.authMiddleware.RequireRole(entity.RoleBusiness))
	api.PATCH("/offers/:id", r.offerHandler.UpdateOffer, authenticate)
	api.DELETE("/offers/:id", r.offerHandler.DeleteOffer, authenticate)

	api.GET("/offerdetails/:id", r.offerHandler.GetOfferDetail, authenticate)

	// Orders
	api.GET("/orders", r.orderHandler.ListOrders, authenticate)
	api.POST("/orders", r.orderHandler.CreateOrder, authenticate, r.authMiddleware.RequireRole(entity.RoleCustomer))
	api.PATCH("/orders/:id", r.orderHandler.UpdateOrderStatus, authenticate)
	api.DELETE("/orders/:id", r.orderHandler.DeleteOrder, authenticate)
	api.GET("/order-count/:business_user_id", r.orderHandler.CountInProgressOrders, authenticate)
	api.GET("/completed-order-count/:business_user_id", r.orderHandler.CountCompletedOrders, authenticate)

	// Reviews
	api.GET("/reviews", r.reviewHandler.ListReviews, authenticate)
	api.POST("/reviews", r.reviewHandler.CreateReview, authenticate, r.authMiddleware.RequireRole(entity.RoleCustomer))
	api.GET("/reviews/:id", r.reviewHandler.GetReview, authenticate)
	api.PATCH("/reviews/:id", r.reviewHandler.UpdateReview, authenticate)
	api.DELETE("/reviews/:id", r.reviewHandler.DeleteReview, authenticate)

	// Profiles
	api.GET("/profile/:pk", r.profileHandler.GetProfile, authenticate)
	api.PATCH("/profile/:pk", r.profileHandler.UpdateProfile, authenticate)
	api.GET("/profiles/business", r.profileHandler.ListBusinessProfiles, authenticate)
	api.GET("/profiles/customer", r.profileHandler.ListCustomerProfiles, authenticate)

	// Uploads
	api.POST("/uploads", r.uploadHandler.Upload, authenticate)
}
