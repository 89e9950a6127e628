package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	exchange "exchange_back"
	"exchange_back/models"
	"exchange_back/pkg/cache"
	"exchange_back/pkg/coingecko"
	"exchange_back/pkg/handler"
	"exchange_back/pkg/mail"
	"exchange_back/pkg/repository"
	"exchange_back/pkg/service"
	"exchange_back/pkg/token"
	"exchange_back/pkg/tronclient"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	if err := godotenv.Load(); err != nil {
		logrus.Infof("no .env file loaded: %s", err)
	}

	if err := InitConfig(); err != nil {
		logrus.Fatalf("error reading config: %s", err.Error())
	}
	initLogger()

	db, err := repository.NewPostgresDB(repository.Config{
		Host:         viper.GetString("db.host"),
		Port:         viper.GetString("db.port"),
		Username:     viper.GetString("db.username"),
		Password:     os.Getenv("DB_PASSWORD"),
		DBName:       viper.GetString("db.dbname"),
		SSLMode:      viper.GetString("db.sslmode"),
		MaxOpenConns: viper.GetInt("db.max_open_conns"),
	})
	if err != nil {
		logrus.Fatalf("failed to initialize db: %s", err.Error())
	}
	if err := repository.Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate db: %s", err.Error())
	}
	logrus.Info("database ready")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	tokens := token.NewManager(jwtSecret, viper.GetString("auth.issuer"), viper.GetDuration("auth.token_ttl"))

	otpTTL := viper.GetDuration("auth.otp_ttl")
	mailer := mail.NewMailer(mail.Config{
		From:          viper.GetString("mail.from"),
		FromName:      viper.GetString("mail.from_name"),
		AdminEmail:    viper.GetString("mail.admin_email"),
		MailjetKey:    os.Getenv("MAILJET_API_KEY"),
		MailjetSecret: os.Getenv("MAILJET_SECRET_KEY"),
		SMTPHost:      viper.GetString("mail.smtp_host"),
		SMTPPort:      viper.GetInt("mail.smtp_port"),
		SMTPUser:      viper.GetString("mail.smtp_user"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		OTPTTL:        otpTTL,
	})

	feeRate, err := decimal.NewFromString(viper.GetString("swap.fee_rate"))
	if err != nil {
		logrus.Fatalf("invalid swap.fee_rate: %s", err.Error())
	}

	deps := service.Deps{
		Tokens:   tokens,
		Notifier: mailer,
		OTPs:     newOTPStore(otpTTL),
		Rates: coingecko.NewClient(
			viper.GetString("coingecko.base_url"),
			os.Getenv("COINGECKO_API_KEY"),
			cache.NewRateCache(viper.GetDuration("coingecko.cache_ttl")),
		),
		FeeRate: feeRate,
	}
	if viper.GetBool("tron.enabled") {
		deps.Verifier = tronclient.NewTronHTTPClient(viper.GetString("tron.base_url"), os.Getenv("TRON_API_KEY"))
		logrus.Info("on-chain deposit checks enabled")
	}

	repos := repository.NewRepository(db)
	if email := viper.GetString("admin.email"); email != "" {
		if err := repos.Users.SetRole(context.Background(), email, models.RoleAdmin); err != nil {
			logrus.Errorf("failed to promote admin %s: %s", email, err)
		}
	}

	uploadDir := viper.GetString("uploads.dir")
	if err := os.MkdirAll(filepath.Join(uploadDir, "kyc"), 0o750); err != nil {
		logrus.Fatalf("failed to create upload dir: %s", err.Error())
	}

	services := service.NewService(repos, deps)
	handlers := handler.NewHandler(services, tokens, handler.Config{
		AllowOrigins:      viper.GetStringSlice("cors.allow_origins"),
		CookieDomain:      viper.GetString("auth.cookie_domain"),
		CookieSecure:      viper.GetBool("auth.cookie_secure"),
		UploadDir:         uploadDir,
		MaxUploadBytes:    viper.GetInt64("uploads.max_bytes"),
		AuthRatePerMinute: viper.GetInt("auth.rate_per_minute"),
		AuthRateBurst:     viper.GetInt("auth.rate_burst"),
		TrustedProxies:    viper.GetStringSlice("http.trusted_proxies"),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = viper.GetString("port")
	}

	srv := new(exchange.Server)
	go func() {
		if err := srv.Run(port, handlers.InitRoute()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error running http server: %s", err.Error())
		}
	}()
	logrus.Infof("server started on :%s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error on server shutdown: %s", err.Error())
	}
	if err := db.Close(); err != nil {
		logrus.Errorf("error on db close: %s", err.Error())
	}
}

func InitConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// initLogger applies log.level and, when log.file is set, writes rotated logs to it.
func initLogger() {
	level, err := logrus.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if file := viper.GetString("log.file"); file != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}
}

func newOTPStore(ttl time.Duration) service.OTPStore {
	if !viper.GetBool("redis.enabled") {
		logrus.Warn("redis disabled, verification codes are kept in memory")
		return cache.NewMemoryOTPStore(ttl)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("redis.addr"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       viper.GetInt("redis.db"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect to redis: %s", err.Error())
	}
	return cache.NewRedisOTPStore(client, ttl)
}
