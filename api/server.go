package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/yacinecs/wallet-backend/middleware"
	"github.com/yacinecs/wallet-backend/models"
	"github.com/yacinecs/wallet-backend/providers"
	"github.com/yacinecs/wallet-backend/providers/chain"
	"github.com/yacinecs/wallet-backend/services"
	activitylogs "github.com/yacinecs/wallet-backend/services/activity_logs"
	"github.com/yacinecs/wallet-backend/services/blockchain"
	"github.com/yacinecs/wallet-backend/services/monitoring/logging"
	"github.com/yacinecs/wallet-backend/services/monitoring/tasks"
	"github.com/yacinecs/wallet-backend/services/security"
	"github.com/yacinecs/wallet-backend/services/transaction"
	"github.com/yacinecs/wallet-backend/services/user"
	"github.com/yacinecs/wallet-backend/services/wallet"
	"github.com/yacinecs/wallet-backend/utils"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

var chainAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type Server struct {
	router    *gin.Engine
	store     *db.Store
	config    *utils.Config
	logger    *logging.Logger
	scheduler *tasks.TaskScheduler
	provider  *providers.ProviderService
	redis     *services.RedisService

	users        *user.UserService
	wallets      *wallet.WalletService
	transactions *transaction.TransactionService
	chain        *blockchain.BlockchainService
	activity     *activitylogs.ActivityLog
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	store := db.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("chainaddress", func(fl validator.FieldLevel) bool {
			return chainAddressPattern.MatchString(fl.Field().String())
		})
	}

	var redis *services.RedisService
	if c.RedisHost != "" {
		redis, err = services.NewRedisService(&services.RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
		})
		if err != nil {
			l.Warn(fmt.Sprintf("redis unavailable, wallet reads will not be cached: %v", err))
		}
	}

	cache := security.NewCache()
	if err := cache.Start(); err != nil {
		log.Fatalf("Unable to start in-process cache - %v", err)
	}

	chainProvider, err := chain.NewChainProvider(cache)
	if err != nil {
		log.Fatalf("Unable to configure chain provider - %v", err)
	}

	provider := providers.NewProviderService()
	provider.AddProvider(chainProvider)

	scheduler := tasks.NewTaskScheduler(l)

	wallets := wallet.NewWalletService(store, l, redis)
	users := user.NewUserService(store, l, wallets)
	transactions := transaction.NewTransactionService(store, l)
	chainService := blockchain.NewBlockchainService(provider, wallets, store, l)
	activity := activitylogs.NewActivityLog(store)

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())
	g.Use(middleware.NewActivityLogMiddleware(activity).ActivityLogger())

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:       g,
		store:        store,
		config:       c,
		logger:       l,
		scheduler:    scheduler,
		provider:     provider,
		redis:        redis,
		users:        users,
		wallets:      wallets,
		transactions: transactions,
		chain:        chainService,
		activity:     activity,
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to Wallet Backend!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Auth{}.router(s)
	Wallets{}.router(s)
	Transactions{}.router(s)
	Blockchain{}.router(s)

	if err := s.chain.StartConfirmationWorker(s.scheduler); err != nil {
		s.logger.Error(fmt.Sprintf("failed to start confirmation worker: %v", err))
	}

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
