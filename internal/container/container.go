package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/joseph-annor/stayhub/internal/cache"
	"github.com/joseph-annor/stayhub/internal/config"
	"github.com/joseph-annor/stayhub/internal/models"
	"github.com/joseph-annor/stayhub/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	MongoDBClient *mongo.Client
	Cache         cache.Cache

	HotelService       *services.HotelService
	RoomService        *services.RoomService
	BookingService     *services.BookingService
	OfferService       *services.OfferService
	TestimonialService *services.TestimonialService
	NewsletterService  *services.NewsletterService
	DashboardService   *services.DashboardService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	mongoClient *mongo.Client,
	c cache.Cache,
) *Container {
	repo := models.MongodbNewRepo(mongoClient, cfg.MongoDBName)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Cloudinary:    cld,
		MongoDBClient: mongoClient,
		Cache:         c,

		HotelService:       services.NewHotelService(repo, repo, c, cfg.CacheTTL, cld),
		RoomService:        services.NewRoomService(repo, repo, c, cfg.CacheTTL, cld),
		BookingService:     services.NewBookingService(repo, repo, repo),
		OfferService:       services.NewOfferService(repo, repo),
		TestimonialService: services.NewTestimonialService(repo, repo, repo, c),
		NewsletterService:  services.NewNewsletterService(repo, logger),
		DashboardService:   services.NewDashboardService(repo, repo),
	}
}
