package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joseph-annor/stayhub/internal/container"
	"github.com/joseph-annor/stayhub/internal/handlers"
	"github.com/joseph-annor/stayhub/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{c.Config.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	auth := middleware.Auth(c.Config.ClerkJWKSURL, c.Logger)
	optionalAuth := middleware.OptionalAuth(c.Config.ClerkJWKSURL)

	api := r.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"status":  "OK",
			"service": "stayhub-api",
		})
	})

	hotels := api.Group("/hotels")
	{
		hotels.GET("/", handlers.ListHotels(c.HotelService))
		hotels.GET("/featured/list", handlers.ListFeaturedHotels(c.HotelService))
		hotels.GET("/:id", handlers.GetHotel(c.HotelService))
		hotels.POST("/", auth, handlers.CreateHotel(c.HotelService))
		hotels.PUT("/:id", auth, handlers.UpdateHotel(c.HotelService))
		hotels.DELETE("/:id", auth, handlers.DeleteHotel(c.HotelService))
		hotels.GET("/owner/my-hotels", auth, handlers.MyHotels(c.HotelService))
	}

	rooms := api.Group("/rooms")
	{
		rooms.GET("/", handlers.SearchRooms(c.RoomService))
		rooms.GET("/hotel/:hotelId", handlers.RoomsByHotel(c.RoomService))
		rooms.GET("/owner/my-rooms", auth, handlers.MyRooms(c.RoomService))
		rooms.GET("/:id", handlers.GetRoom(c.RoomService))
		rooms.POST("/:id/check-availability", handlers.CheckRoomAvailability(c.RoomService))
		rooms.POST("/", auth, handlers.CreateRoom(c.RoomService))
		rooms.PUT("/:id", auth, handlers.UpdateRoom(c.RoomService))
		rooms.PATCH("/:id/availability", auth, handlers.UpdateRoomAvailability(c.RoomService))
		rooms.DELETE("/:id", auth, handlers.DeleteRoom(c.RoomService))
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("/", middleware.RateLimitByIP(middleware.BookingCreateLimiter), handlers.CreateBooking(c.BookingService))
		bookings.GET("/public/:id", handlers.GetPublicBooking(c.BookingService))
		bookings.GET("/my-bookings", auth, handlers.MyBookings(c.BookingService))
		bookings.GET("/:id", auth, handlers.GetBooking(c.BookingService))
		bookings.PATCH("/:id/cancel", auth, handlers.CancelBooking(c.BookingService))

		// Admin surface: any verified identity.
		bookings.GET("/", auth, handlers.ListBookings(c.BookingService))
		bookings.GET("/stats/dashboard", auth, handlers.BookingStats(c.BookingService))
		bookings.GET("/guest/:email", auth, handlers.BookingsByGuest(c.BookingService))
		bookings.PUT("/:id", auth, handlers.UpdateBooking(c.BookingService))
		bookings.PATCH("/:id/payment", auth, handlers.UpdateBookingPayment(c.BookingService))
		bookings.DELETE("/:id", auth, handlers.DeleteBooking(c.BookingService))
	}

	offers := api.Group("/offers")
	{
		offers.GET("/", handlers.ListOffers(c.OfferService))
		offers.GET("/featured/list", handlers.ListFeaturedOffers(c.OfferService))
		offers.GET("/:id", handlers.GetOffer(c.OfferService))
		offers.POST("/validate-promo", handlers.ValidatePromoCode(c.OfferService))
		offers.POST("/", auth, handlers.CreateOffer(c.OfferService))
		offers.PUT("/:id", auth, handlers.UpdateOffer(c.OfferService))
		offers.DELETE("/:id", auth, handlers.DeleteOffer(c.OfferService))
		offers.PATCH("/:id/toggle-active", auth, handlers.ToggleOfferActive(c.OfferService))
	}

	testimonials := api.Group("/testimonials")
	{
		testimonials.GET("/", handlers.ListTestimonials(c.TestimonialService))
		testimonials.GET("/hotel/:hotelId", handlers.TestimonialsByHotel(c.TestimonialService))
		testimonials.GET("/:id", handlers.GetTestimonial(c.TestimonialService))
		testimonials.POST("/", optionalAuth, middleware.RateLimitByIP(middleware.TestimonialCreateLimiter), handlers.CreateTestimonial(c.TestimonialService))
		testimonials.POST("/:id/helpful", handlers.MarkTestimonialHelpful(c.TestimonialService))
		testimonials.PUT("/:id", auth, handlers.RespondToTestimonial(c.TestimonialService))
		testimonials.DELETE("/:id", auth, handlers.DeleteTestimonial(c.TestimonialService))
		testimonials.PATCH("/:id/approve", auth, handlers.ApproveTestimonial(c.TestimonialService))
		testimonials.PATCH("/:id/feature", auth, handlers.FeatureTestimonial(c.TestimonialService))
	}

	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", middleware.RateLimitByIP(middleware.NewsletterSubscribeLimiter), handlers.SubscribeNewsletter(c.NewsletterService))
		newsletter.GET("/verify", handlers.VerifyNewsletter(c.NewsletterService))
		newsletter.PUT("/preferences", handlers.UpdateNewsletterPreferences(c.NewsletterService))
		newsletter.POST("/unsubscribe", handlers.UnsubscribeNewsletter(c.NewsletterService))
		newsletter.GET("/subscribers", auth, handlers.ListSubscribers(c.NewsletterService))
		newsletter.GET("/stats", auth, handlers.NewsletterStats(c.NewsletterService))
	}

	owner := api.Group("/owner")
	{
		owner.GET("/dashboard", auth, handlers.OwnerDashboard(c.DashboardService))
	}

	api.POST("/upload", auth, handlers.UploadImages(c.Cloudinary))

	return r
}
