package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	adminapp "github.com/sngm3741/telecom-hire-backend/api/internal/admin/application"
	"github.com/sngm3741/telecom-hire-backend/api/internal/config"
	mongodoc "github.com/sngm3741/telecom-hire-backend/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/telecom-hire-backend/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/telecom-hire-backend/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/telecom-hire-backend/api/internal/interfaces/http/public"
	"github.com/sngm3741/telecom-hire-backend/api/internal/metrics"
	publicapp "github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ
// 依存注入するコンポジションルート。アプリケーションサービスをルータへ接続する
// 責務のみを担い、ドメインロジックは持たない。
type Server struct {
	logger         zerolog.Logger
	client         *mongo.Client
	database       *mongo.Database
	submissionRepo *mongodoc.SubmissionRepository
	commandService publicapp.SubmissionCommandService
	queryService   publicapp.SubmissionQueryService
	adminService   adminapp.SubmissionService
	jwtConfigs     []config.JWTConfig
	jwtAudience    string
	addr           string
	allowedOrigins []string
	requestTimeout time.Duration
}

type authenticatedUser = commonhttp.AuthenticatedUser

// New は Config と Mongo クライアントを受け取り、サービスとハンドラを組み立てた
// Server を返す。依存解決の起点となるファクトリ。
func New(cfg config.Config, client *mongo.Client, logger zerolog.Logger) *Server {
	srv := &Server{
		logger:         logger,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		requestTimeout: cfg.RequestTimeout,
	}

	srv.submissionRepo = mongodoc.NewSubmissionRepository(srv.database, cfg.MongoCollection)
	srv.commandService = publicapp.NewSubmissionCommandService(srv.submissionRepo)
	srv.queryService = publicapp.NewSubmissionQueryService(srv.submissionRepo)

	adminRepo := mongodoc.NewAdminSubmissionRepository(srv.database, cfg.MongoCollection)
	srv.adminService = adminapp.NewSubmissionService(adminRepo)

	return srv
}

// Run はHTTPサーバーを起動し、ルーティングやミドルウェアを組み立てる。
func (s *Server) Run() error {
	if err := s.ensureIndexes(context.Background()); err != nil {
		// インデックスが既にある・権限がない等は起動を止める理由にならない
		s.logger.Warn().Err(err).Msg("email_primary インデックスの作成に失敗")
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.requestLogger())
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:         s.logger,
		Commands:       s.commandService,
		Queries:        s.queryService,
		Client:         s.client,
		RequestTimeout: s.requestTimeout,
	})
	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:         s.logger,
		Submissions:    s.adminService,
		RequestTimeout: s.requestTimeout,
	})

	router.Route("/api", func(r chi.Router) {
		publicHandler.Register(r)
		r.Route("/admin", func(r chi.Router) {
			if len(s.jwtConfigs) == 0 {
				r.Use(adminDisabled(s.logger))
			} else {
				r.Use(s.authMiddleware)
			}
			adminHandler.Register(r)
		})
	})
	router.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("HTTP サーバー起動")
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// ensureIndexes はユニークインデックスを起動時に用意する。
func (s *Server) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.submissionRepo.EnsureIndexes(ctx)
}

// requestLogger はリクエスト単位の zerolog イベントとレイテンシ計測を行う。
func (s *Server) requestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			metrics.RequestDuration.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))

			s.logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", elapsed).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
// 許可リストが空 (ALLOWED_ORIGINS 未設定) の場合はヘッダーを一切付与しない。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	_, ok := allowed[origin]
	return ok
}

// adminDisabled は管理シークレット未設定時に管理ルートを塞ぐミドルウェア。
func adminDisabled(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			commonhttp.WriteError(logger, w, http.StatusServiceUnavailable, "admin api is not configured")
		})
	}
}

// authMiddleware は Authorization ヘッダーから JWT を検証し、認証済みユーザーを
// コンテキストへ詰める。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "a Bearer token is required")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "access token is empty")
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, err.Error())
			return
		}

		user := authenticatedUser{
			ID:       claims.Subject,
			Name:     claims.Name,
			Username: claims.PreferredUsername,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken は設定済みの JWT 構成を順番に試し、署名検証と Issuer/Audience の
// 整合性を確認する。いずれにも一致しない場合は認証エラーを返す。
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, fmt.Errorf("authentication is not configured")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}

		now := time.Now()
		if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
			continue
		}
		if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, fmt.Errorf("access token is invalid")
}

// contains は Audience 等の検証で利用する単純な包含チェック。
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断し、プロセス終了時の
// リソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("MongoDB 切断時にエラー")
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown
// を実現する。OS 依存の関心事をここへ閉じ込める。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Info().Str("signal", sig.String()).Msg("シグナル受信。サーバー停止処理を開始")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error().Err(err).Msg("サーバー停止時にエラー")
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
