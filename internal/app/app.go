package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ranking-insight/internal/application/auth"
	"ranking-insight/internal/application/catalog"
	"ranking-insight/internal/application/insights"
	rankingapp "ranking-insight/internal/application/ranking"
	"ranking-insight/internal/application/reports"
	authDomain "ranking-insight/internal/domain/auth"
	"ranking-insight/internal/infra/memory"
	authinfra "ranking-insight/internal/infrastructure/auth"
	"ranking-insight/internal/infrastructure/cache"
	"ranking-insight/internal/infrastructure/config"
	"ranking-insight/internal/infrastructure/db"
	"ranking-insight/internal/infrastructure/external/paapi"
	"ranking-insight/internal/infrastructure/llm"
	"ranking-insight/internal/infrastructure/notify"
	"ranking-insight/internal/infrastructure/persistence/sqlrepo"
	"ranking-insight/internal/infrastructure/storage"

	"github.com/redis/go-redis/v9"
)

// devAdminPassword 僅在未設定 admin 密碼雜湊時使用。
const devAdminPassword = "password123"

// userSeeder 為可寫入帳號的 repository。
type userSeeder interface {
	UpsertUser(ctx context.Context, email, name, passwordHash string, role authDomain.Role) (string, error)
}

// App 彙整 API 與 CLI 共用的依賴。
type App struct {
	Config   config.Config
	DB       *sql.DB
	Catalog  *catalog.Catalog
	Ranking  *rankingapp.Service
	Analyzer *insights.Analyzer
	Renderer *insights.TextRenderer
	Reports  *reports.UseCase
	Users    auth.UserRepository
	Tokens   *authinfra.JWTIssuer
	Login    *auth.LoginUseCase
	Authz    *auth.Authorizer
	Notifier notify.Notifier

	redis *redis.Client
}

// New 依設定組裝所有元件；外部服務不可用時退回本地實作。
func New(ctx context.Context, cfg config.Config) (*App, error) {
	conn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	a, err := NewWithDB(ctx, cfg, conn)
	if err != nil && conn != nil {
		_ = conn.Close()
	}
	return a, err
}

// NewWithDB 以既有連線組裝；conn 為 nil 時使用記憶體儲存。
func NewWithDB(ctx context.Context, cfg config.Config, conn *sql.DB) (*App, error) {
	cat, err := catalog.Load(cfg.Catalog.FocusBrand, cfg.Catalog.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	a := &App{Config: cfg, DB: conn, Catalog: cat}

	var repo rankingapp.Repository
	if conn != nil {
		dialect := sqlrepo.DialectFor(cfg.DB.Driver)
		sqlRepo := sqlrepo.NewRepo(conn, dialect)
		if err := sqlRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		repo = sqlRepo
		a.Users = sqlrepo.NewAuthRepo(conn, dialect)
	} else {
		store := memory.NewStore()
		repo = store
		a.Users = memoryUsers{store}
		log.Printf("db dsn not set, using in-memory history")
	}
	if err := a.seedAdmin(ctx); err != nil {
		return nil, err
	}

	builder := rankingapp.NewTableBuilder(cat, rankingapp.NewGenerator(cfg.Ranking.Seed))
	provider := a.provider(ctx, builder)
	a.Ranking = rankingapp.NewService(rankingapp.NewHistory(repo), provider, builder, cfg.Ranking.Categories)

	a.Analyzer = insights.NewAnalyzer(a.summarizer(ctx))
	if a.Renderer, err = insights.NewTextRenderer(); err != nil {
		return nil, err
	}

	var uploader reports.Uploader
	if cfg.Reports.S3Bucket != "" {
		up, err := storage.NewS3Uploader(ctx, storage.S3Config{
			Bucket: cfg.Reports.S3Bucket,
			Prefix: cfg.Reports.S3Prefix,
			Region: cfg.Reports.Region,
		})
		if err != nil {
			log.Printf("s3 uploader disabled err=%v", err)
		} else {
			uploader = up
		}
	}
	a.Reports = reports.NewUseCase(cfg.Reports.OutputDir, cat.FocusBrand(), uploader)

	a.Tokens = authinfra.NewJWTIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	a.Login = auth.NewLoginUseCase(a.Users, authinfra.BcryptHasher{}, a.Tokens)
	a.Authz = auth.NewAuthorizer(a.Users)

	tg := cfg.Notifier.Telegram
	if tg.Enabled && tg.Token != "" && tg.ChatID != 0 {
		a.Notifier = notify.NewTelegramClient(tg.Token, tg.ChatID, cat.FocusBrand())
	}
	return a, nil
}

// provider 依設定選擇資料來源；缺少憑證時退回模擬資料。
func (a *App) provider(ctx context.Context, builder *rankingapp.TableBuilder) rankingapp.Provider {
	if a.Config.Ranking.Provider == "live" && a.Config.ResolveProvider() != "live" {
		log.Printf("PA-API credentials missing, falling back to mock provider")
	}
	if a.Config.ResolveProvider() != "live" {
		return rankingapp.NewMockProvider(builder)
	}

	pc := a.Config.PAAPI
	client := paapi.NewClient(paapi.Config{
		AccessKey:   pc.AccessKey,
		SecretKey:   pc.SecretKey,
		PartnerTag:  pc.PartnerTag,
		Region:      pc.Region,
		Marketplace: pc.Marketplace,
		Host:        pc.Host,
		Timeout:     pc.Timeout,
	})

	var snapshots cache.SnapshotCache
	if a.Config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: a.Config.Redis.Addr})
		if err := cache.Ping(ctx, rdb); err != nil {
			log.Printf("redis unavailable addr=%s err=%v, using in-process snapshot cache", a.Config.Redis.Addr, err)
			_ = rdb.Close()
		} else {
			a.redis = rdb
			snapshots = cache.NewRedisSnapshotCache(rdb, a.Config.Redis.TTL)
		}
	}
	log.Printf("using live provider marketplace=%s", pc.Marketplace)
	return paapi.NewProvider(client, snapshots, a.Catalog.FocusBrand(), pc.MaxPages)
}

// summarizer 只在啟用 LLM 且 Bedrock 可初始化時回傳非 nil。
func (a *App) summarizer(ctx context.Context) insights.Summarizer {
	ic := a.Config.Insights
	if !ic.LLMEnabled {
		return nil
	}
	s, err := llm.NewBedrockSummarizer(ctx, ic.BedrockRegion, ic.ModelID)
	if err != nil {
		log.Printf("bedrock summarizer disabled err=%v", err)
		return nil
	}
	return s
}

func (a *App) seedAdmin(ctx context.Context) error {
	email := a.Config.Auth.AdminEmail
	if email == "" {
		return nil
	}
	hash := a.Config.Auth.AdminPasswordHash
	if hash == "" {
		h, err := authinfra.HashPassword(devAdminPassword)
		if err != nil {
			return fmt.Errorf("hash dev admin password: %w", err)
		}
		hash = h
		log.Printf("admin_password_hash not set, seeding %s with the development password", email)
	}
	seeder, ok := a.Users.(userSeeder)
	if !ok {
		return fmt.Errorf("user repository does not support seeding")
	}
	if _, err := seeder.UpsertUser(ctx, email, "Administrator", hash, authDomain.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// Close 釋放連線。
func (a *App) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// memoryUsers 讓 memory.Store 支援帳號 upsert。
type memoryUsers struct {
	*memory.Store
}

func (m memoryUsers) UpsertUser(ctx context.Context, email, name, passwordHash string, role authDomain.Role) (string, error) {
	if u, err := m.FindByEmail(ctx, email); err == nil {
		return u.ID, nil
	}
	return m.AddUser(email, passwordHash, name, role), nil
}
