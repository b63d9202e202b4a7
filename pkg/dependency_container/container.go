package dependency_container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	"github.com/tarpaulin/tarpaulin/pkg/app/ratelimit"
	appSubmission "github.com/tarpaulin/tarpaulin/pkg/app/submission"
	appUser "github.com/tarpaulin/tarpaulin/pkg/app/user"
	"github.com/tarpaulin/tarpaulin/pkg/config"
	domainAssignment "github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	domainRatelimit "github.com/tarpaulin/tarpaulin/pkg/domain/ratelimit"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
	handlers "github.com/tarpaulin/tarpaulin/pkg/handlers/http"
	"github.com/tarpaulin/tarpaulin/pkg/infra/auth/jwt"
	"github.com/tarpaulin/tarpaulin/pkg/infra/breaker"
	"github.com/tarpaulin/tarpaulin/pkg/infra/cache"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database"
	"github.com/tarpaulin/tarpaulin/pkg/infra/hashing"
	"github.com/tarpaulin/tarpaulin/pkg/infra/repository"
	"github.com/tarpaulin/tarpaulin/pkg/infra/storage"
	"github.com/tarpaulin/tarpaulin/pkg/server/middleware"
	"github.com/tarpaulin/tarpaulin/pkg/server/router"
)

const rateLimitBreakerName = "rate-limit-store"

type Container struct {
	// Cache is nil unless rate limiting uses redis.
	Cache                  cache.Client
	stopSweeper            context.CancelFunc
	UserRepository         domainUser.Repository
	CourseRepository       domainCourse.Repository
	AssignmentRepository   domainAssignment.Repository
	BucketStore            domainRatelimit.Store
	BlobStore              submission.BlobStore
	Limiter                ratelimit.Limiter
	JWTManager             jwt.Manager
	HandlerTransport       handlers.HandlerTransport
	MiddlewareTransport    *middleware.Transport
	PanicRecoverMiddleware middleware.Middleware
	MetricsMiddleware      middleware.Middleware
	RateLimitMiddleware    middleware.Middleware
	AuthMiddleware         middleware.Middleware
	OptionalAuthMiddleware middleware.Middleware
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *database.DB
}

func NewContainer(ctx context.Context, di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger

	var blobStore submission.BlobStore
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		blobStore = storage.NewPostgresBlobStore(di.DB.DB)
	case config.StorageBackendS3:
		s3Client, err := storage.NewS3Client(ctx, &cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 client: %w", err)
		}
		blobStore = storage.NewS3BlobStore(s3Client, cfg.Storage.Bucket, cfg.Storage.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	window := cfg.RateLimit.Window
	if window <= 0 {
		window = ratelimit.DefaultWindow
	}
	// idle buckets expire once they would have refilled completely
	bucketTTL := 2 * window

	// redis is only dialled when it backs the buckets
	var (
		cacheInstance cache.Client
		bucketStore   domainRatelimit.Store
		stopSweeper   context.CancelFunc = func() {}
	)
	switch cfg.RateLimit.Backend {
	case config.RateLimitBackendMemory:
		buckets := cache.NewTTLMap[map[string]string](bucketTTL)
		var sweepCtx context.Context
		sweepCtx, stopSweeper = context.WithCancel(context.Background())
		go buckets.RunSweeper(sweepCtx, bucketTTL)
		bucketStore = repository.NewBucketMemoryStore(buckets)
	case config.RateLimitBackendRedis:
		cacheInstance = cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		bucketStore = repository.NewBucketRedisStore(cacheInstance.RedisClient(), bucketTTL)
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
	}

	limiterOpts := &ratelimit.Opts{
		Window:       window,
		MaxTokens:    cfg.RateLimit.MaxTokens,
		StoreTimeout: cfg.RateLimit.StoreTimeout,
	}
	if cfg.RateLimit.BreakerTimeout > 0 {
		limiterOpts.Breaker = breaker.NewCircuitBreaker(
			rateLimitBreakerName,
			cfg.RateLimit.BreakerTimeout,
			cfg.RateLimit.BreakerMaxFailures,
		)
	}
	limiter := ratelimit.NewLimiter(bucketStore, logger, limiterOpts)

	userRepository := repository.NewUserRepository(di.DB.DB)
	courseRepository := repository.NewCourseRepository(di.DB.DB)
	assignmentRepository := repository.NewAssignmentRepository(di.DB.DB)

	healthChecks := map[string]handlers.Pinger{"database": di.DB}
	if cacheInstance != nil {
		healthChecks["redis"] = cacheInstance
	}

	jwtManager := jwt.NewJwtManager(&cfg.Server)
	hasher := hashing.NewHasher(hashing.DefaultCost)

	// services
	registrar := appUser.NewRegistrar(logger, userRepository, hasher, jwtManager)
	authenticator := appUser.NewAuthenticator(logger, userRepository, hasher, jwtManager)
	userFinder := appUser.NewFinder(userRepository, courseRepository)
	coursePager := appCourse.NewPager(courseRepository)
	submissionCreator := appSubmission.NewCreator(logger, assignmentRepository, courseRepository, blobStore)
	submissionLister := appSubmission.NewLister(logger, assignmentRepository, courseRepository, blobStore)
	submissionGrader := appSubmission.NewGrader(assignmentRepository, courseRepository, blobStore)
	submissionDownloader := appSubmission.NewDownloader(assignmentRepository, courseRepository, blobStore)

	handlerTransport := handlers.HandlerTransport{
		// Users
		CreateUserHandler: handlers.NewCreateUserHandler(logger, registrar),
		LoginHandler:      handlers.NewLoginHandler(logger, authenticator),
		ListUsersHandler:  handlers.NewListUsersHandler(userRepository),
		GetUserHandler:    handlers.NewGetUserHandler(userFinder),
		// Courses
		ListCoursesHandler:           handlers.NewListCoursesHandler(coursePager),
		CreateCourseHandler:          handlers.NewCreateCourseHandler(logger, courseRepository, userRepository),
		GetCourseHandler:             handlers.NewGetCourseHandler(courseRepository),
		UpdateCourseHandler:          handlers.NewUpdateCourseHandler(logger, courseRepository, userRepository),
		DeleteCourseHandler:          handlers.NewDeleteCourseHandler(logger, courseRepository),
		UpdateEnrollmentHandler:      handlers.NewUpdateEnrollmentHandler(logger, courseRepository),
		ListStudentsHandler:          handlers.NewListStudentsHandler(courseRepository, userRepository),
		GetRosterHandler:             handlers.NewGetRosterHandler(courseRepository, userRepository),
		ListCourseAssignmentsHandler: handlers.NewListCourseAssignmentsHandler(courseRepository, assignmentRepository),
		// Assignments
		CreateAssignmentHandler: handlers.NewCreateAssignmentHandler(logger, assignmentRepository, courseRepository),
		GetAssignmentHandler:    handlers.NewGetAssignmentHandler(assignmentRepository),
		UpdateAssignmentHandler: handlers.NewUpdateAssignmentHandler(logger, assignmentRepository, courseRepository),
		DeleteAssignmentHandler: handlers.NewDeleteAssignmentHandler(logger, assignmentRepository, courseRepository),
		// Submissions
		CreateSubmissionHandler:   handlers.NewCreateSubmissionHandler(logger, submissionCreator),
		ListSubmissionsHandler:    handlers.NewListSubmissionsHandler(submissionLister),
		GradeSubmissionHandler:    handlers.NewGradeSubmissionHandler(logger, submissionGrader),
		DownloadSubmissionHandler: handlers.NewDownloadSubmissionHandler(submissionDownloader),
		// Operational
		GetVersionHandler: handlers.NewGetVersionHandler(),
		HealthHandler:     handlers.NewHealthHandler(healthChecks),
	}

	panicRecoverMiddleware := middleware.NewPanicRecoverMiddleware(logger)
	metricsMiddleware := middleware.NewMetricsMiddleware(logger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(logger, limiter)

	return &Container{
		Cache:                  cacheInstance,
		stopSweeper:            stopSweeper,
		UserRepository:         userRepository,
		CourseRepository:       courseRepository,
		AssignmentRepository:   assignmentRepository,
		BucketStore:            bucketStore,
		BlobStore:              blobStore,
		Limiter:                limiter,
		JWTManager:             jwtManager,
		HandlerTransport:       handlerTransport,
		MiddlewareTransport:    middleware.NewTransport(panicRecoverMiddleware, metricsMiddleware, rateLimitMiddleware),
		PanicRecoverMiddleware: panicRecoverMiddleware,
		MetricsMiddleware:      metricsMiddleware,
		RateLimitMiddleware:    rateLimitMiddleware,
		AuthMiddleware:         middleware.NewAuthMiddleware(logger, jwtManager),
		OptionalAuthMiddleware: middleware.NewOptionalAuthMiddleware(logger, jwtManager),
	}, nil
}

// Router builds the API routes from the container's transports.
func (c *Container) Router() router.ServerRouter {
	return router.NewAPIRouter(c.MiddlewareTransport, c.HandlerTransport, c.AuthMiddleware, c.OptionalAuthMiddleware)
}

func (c *Container) Close() error {
	c.stopSweeper()
	if c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}
