package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/checkout"
	"github.com/ariefcatur/djikoe/internal/config"
	"github.com/ariefcatur/djikoe/internal/httpx"
	"github.com/ariefcatur/djikoe/internal/imagehost"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/logging"
	"github.com/ariefcatur/djikoe/internal/memstore"
	"github.com/ariefcatur/djikoe/internal/notice"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/postgres"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/redisx"
	"github.com/ariefcatur/djikoe/internal/session"
	"github.com/ariefcatur/djikoe/internal/statistik"
	"github.com/joho/godotenv"
)

// stores = semua dependency data yang berbeda antara mode postgres dan memory.
type stores struct {
	accounts auth.AccountStore
	tokens   auth.TokenStore
	profiles profile.Store
	products catalog.Store
	pesanan  pesanan.Store
	images   imagehost.Uploader
	cache    statistik.Cache
	uploads  http.Handler
	health   map[string]func(context.Context) error

	akunEvents, produkEvents, pesananEvents kafkax.Publisher
	shutdown                                []func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)
	log := logging.For("main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// batas tulis checkout + 5s; dipakai juga sebagai batas graceful shutdown
	writeTimeout := cfg.UploadTimeout + 10*time.Second
	requestTimeout := writeTimeout + 5*time.Second

	var st *stores
	switch cfg.StorageDriver {
	case "memory":
		st = memoryStores(cfg)
	default:
		st, err = postgresStores(ctx, cfg)
		if err != nil {
			log.Error("storage init failed", "error", err)
			os.Exit(1)
		}
	}

	authSvc := &auth.Service{
		Accounts: st.accounts,
		Profiles: st.profiles,
		Tokens:   st.tokens,
		Events:   st.akunEvents,
		Producer: cfg.ServiceName,
		TTL:      cfg.SessionTTL,
		Log:      logging.For("auth"),
	}
	if cfg.BootstrapAdmin.Enabled() {
		bootstrapAdmin(ctx, authSvc, cfg.BootstrapAdmin, log)
	}

	resolver := &session.Resolver{Profiles: st.profiles, Log: logging.For("session")}
	hub := session.NewHub(authSvc, resolver, cfg.ResolveWait, logging.For("session"))

	pesananSvc := &pesanan.Service{
		Store:    st.pesanan,
		Events:   st.pesananEvents,
		Producer: cfg.ServiceName,
		Log:      logging.For("pesanan"),
	}
	router, err := httpx.NewRouter(httpx.Deps{
		Auth:     authSvc,
		Hub:      hub,
		Resolver: resolver,
		Catalog: &catalog.Service{
			Store:    st.products,
			Images:   st.images,
			Events:   st.produkEvents,
			Producer: cfg.ServiceName,
			Log:      logging.For("catalog"),
		},
		Pesanan: pesananSvc,
		Checkout: &checkout.Service{
			Orders:       pesananSvc,
			Images:       st.images,
			Log:          logging.For("checkout"),
			WriteTimeout: writeTimeout,
		},
		Statistik: &statistik.Service{
			Orders:   st.pesanan,
			Products: st.products,
			Profiles: st.profiles,
			Cache:    st.cache,
			TTL:      cfg.StatistikCacheTTL,
			Log:      logging.For("statistik"),
		},
		Notices:        &notice.Page{Delay: cfg.NoticeDelay, Log: logging.For("notice")},
		SessionTTL:     cfg.SessionTTL,
		CookieSecure:   cfg.CookieSecure,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: requestTimeout,
		Uploads:        st.uploads,
		Health:         st.health,
		Log:            logging.For("http"),
	})
	if err != nil {
		log.Error("router init failed", "error", err)
		os.Exit(1)
	}

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	// graceful shutdown
	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	// checkout jalan di luar ctx request sampai WriteTimeout; tunggu selesai
	// dulu, baru flush producer, terakhir matikan worker lewat cancel.
	ctx2, cancel2 := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	for _, fn := range st.shutdown {
		fn()
	}
	cancel()
}

func bootstrapAdmin(ctx context.Context, svc *auth.Service, a config.AdminAccount, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := svc.SignUp(ctx, auth.SignUpInput{
		Name:     a.Name,
		Email:    a.Email,
		Password: a.Password,
		Role:     profile.RoleAdmin,
	})
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		log.Info("bootstrap admin already exists", "email", a.Email)
	case err != nil:
		log.Error("bootstrap admin failed", "email", a.Email, "error", err)
	default:
		log.Info("bootstrap admin created", "email", a.Email)
	}
}

func memoryStores(cfg config.Config) *stores {
	m := memstore.New()
	var images imagehost.Uploader = m.Images
	if cfg.CloudinaryCloudName != "" {
		images = cloudinary(cfg)
	}
	nop := kafkax.Nop{}
	return &stores{
		accounts:      m.Accounts,
		tokens:        m.Tokens,
		profiles:      m.Profiles,
		products:      m.Products,
		pesanan:       m.Pesanan,
		images:        images,
		uploads:       m.Images,
		akunEvents:    nop,
		produkEvents:  nop,
		pesananEvents: nop,
	}
}

func postgresStores(ctx context.Context, cfg config.Config) (*stores, error) {
	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, postgres.PoolOptions{
		MaxConns:          cfg.PostgresMaxConns,
		MinConns:          cfg.PostgresMinConns,
		MaxConnLifetime:   cfg.PostgresMaxConnLifetime,
		HealthCheckPeriod: cfg.PostgresHealthCheckPeriod,
		ConnectTimeout:    cfg.PostgresConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr, cfg.RedisPass)
	if err := redisx.Ping(ctx, rdb); err != nil {
		db.Close()
		return nil, err
	}

	// Kafka producer per topic
	klog := logging.For("kafka")
	akun := kafkax.NewProducer(cfg.KafkaBrokers, auth.TopicAkun, 256, klog)
	produk := kafkax.NewProducer(cfg.KafkaBrokers, catalog.TopicProduk, 256, klog)
	psn := kafkax.NewProducer(cfg.KafkaBrokers, pesanan.TopicPesanan, 1024, klog)
	producers := []*kafkax.Producer{akun, produk, psn}
	for _, p := range producers {
		p.Start(ctx)
	}

	return &stores{
		accounts: &auth.AccountRepo{DB: db},
		tokens:   &auth.RedisTokenStore{RDB: rdb},
		profiles: &profile.Repo{DB: db},
		products: &catalog.Repo{DB: db},
		pesanan:  &pesanan.Repo{DB: db},
		images:   cloudinary(cfg),
		cache:    &statistik.RedisCache{RDB: rdb},
		health: map[string]func(context.Context) error{
			"postgres": db.Ping,
			"redis":    func(ctx context.Context) error { return redisx.Ping(ctx, rdb) },
		},
		akunEvents:    akun,
		produkEvents:  produk,
		pesananEvents: psn,
		shutdown: []func(){
			func() {
				for _, p := range producers {
					p.Close() // tutup inbox -> flush & close writer
				}
				for _, p := range producers {
					p.WaitClosed()
				}
			},
			func() { _ = rdb.Close() },
			db.Close,
		},
	}, nil
}

func cloudinary(cfg config.Config) *imagehost.Cloudinary {
	return imagehost.NewCloudinary(cfg.CloudinaryBaseURL, cfg.CloudinaryCloudName,
		cfg.CloudinaryUploadPreset, cfg.MaxUploadBytes, cfg.UploadTimeout)
}
