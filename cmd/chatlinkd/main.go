package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatlink/internal/chatservice"
	grpctransport "chatlink/internal/chatservice/transport/grpc"
	resttransport "chatlink/internal/chatservice/transport/rest"
	"chatlink/internal/config"
	"chatlink/internal/messaging/tinode"
	"chatlink/internal/models"
	"chatlink/internal/notify"
	"chatlink/internal/pkg/log"
	"chatlink/internal/service"
	"chatlink/internal/session"
	"chatlink/internal/store"
	"chatlink/internal/store/sqlite"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := setupLogger(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	rootCtx = log.Into(rootCtx, lg)

	// Локальное хранилище auth-токена.
	tokens, err := sqlite.New(cfg.Store.Path, cfg.Store.Passphrase)
	if err != nil {
		lg.Error("token_store_open_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	lg.Info("token_store_opened", slog.String("path", cfg.Store.Path))

	// Сессия и клиент мессенджера.
	sess := session.New()
	msg := tinode.New(cfg.Messaging.Addr, cfg.Messaging.UserAgent, lg)

	// Транспорт chat-service по конфигурации.
	transport, err := buildTransport(cfg, sess, lg)
	if err != nil {
		lg.Error("chat_transport_init_failed", slog.String("err", err.Error()))
		rootCancel()
		tokens.Close()
		os.Exit(1)
	}

	svc := service.New(cfg.ChatService, models.ParsePlatform(cfg.Device.Platform), sess, msg, service.Clients{
		Auth:         chatservice.NewAuthClient(transport),
		Devices:      chatservice.NewDeviceTokenClient(transport),
		Participants: chatservice.NewParticipantClient(transport),
		Security:     chatservice.NewSecurityClient(transport),
	}, tokens)
	lg.Info("service_initialized")

	router := notify.NewRouter(service.NewFetcher(svc), lg)

	var ready int32 // 0 — not ready; 1 — ready
	httpAddr := cfg.HTTP.Addr()

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/push", pushHandler(router, lg))

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}()

	// Восстановление и прогрев сессии: best-effort, сбои не фатальны —
	// жизненный цикл повторит попытку при следующем событии.
	warmUpSession(rootCtx, cfg, svc, lg)

	atomic.StoreInt32(&ready, 1)

	<-rootCtx.Done()
	lg.Info("shutdown_requested")
	atomic.StoreInt32(&ready, 0)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = httpSrv.Shutdown(shutdownCtx)
	shutdownCancel()

	msg.Disconnect()
	if err := transport.Close(); err != nil {
		lg.Warn("chat_transport_close_failed", slog.String("err", err.Error()))
	}
	if err := tokens.Close(); err != nil {
		lg.Warn("token_store_close_failed", slog.String("err", err.Error()))
	}

	rootCancel()
	lg.Info("service_stopped")
	os.Exit(0)
}

// buildTransport собирает клиент chat-service по выбранному в конфигурации
// транспорту. Сессия служит источником учётных данных для обоих.
func buildTransport(cfg *config.Config, sess *session.Session, lg *slog.Logger) (chatservice.Transport, error) {
	switch cfg.ChatService.Transport {
	case config.TransportREST:
		c, err := resttransport.New(cfg.ChatService.RESTBaseURL, sess, cfg.Timeouts.Service)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		c, err := grpctransport.New(cfg.ChatService.GRPCAddr, sess, cfg.Timeouts.Service, lg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// warmUpSession восстанавливает сессию из персистентного токена, затем, если
// профиль устройства задан, доводит её до привязанного состояния и
// регистрирует push-токен.
func warmUpSession(ctx context.Context, cfg *config.Config, svc *service.Service, lg *slog.Logger) {
	if err := svc.Resume(ctx); err != nil && !errors.Is(err, store.ErrNotFound) {
		lg.Warn("session_resume_failed", slog.String("err", err.Error()))
	}

	if cfg.Device.Phone == "" {
		return
	}

	if err := svc.EnsureSecurityToken(ctx); err != nil {
		lg.Warn("security_token_failed", slog.String("err", err.Error()))
		return
	}

	if err := svc.ConfigureUser(ctx, cfg.Device.Phone, cfg.Device.FullName); err != nil {
		lg.Error("configure_user_failed", slog.String("err", err.Error()))
		return
	}

	if cfg.Device.PushToken != "" {
		svc.SubscribeToken(ctx, cfg.ChatService.NotifClientID, cfg.Device.PushToken)
	}
}

// pushPayload — тело push-колбэка: состояние приложения и сырые данные
// уведомления.
type pushPayload struct {
	State string            `json:"state"`
	Data  map[string]string `json:"data"`
}

// pushHandler принимает полезную нагрузку push-уведомления и отдаёт итог
// разбора роутером.
func pushHandler(router *notify.Router, lg *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var p pushPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		ctx := log.Into(r.Context(), lg)
		d := router.Route(ctx, parseAppState(p.State), notify.ParsePayload(p.Data))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"disposition": d.String()})
	}
}

func parseAppState(s string) notify.AppState {
	switch s {
	case "active":
		return notify.StateActive
	case "inactive":
		return notify.StateInactive
	case "tapped":
		return notify.StateInactiveTapped
	default:
		return notify.StateBackground
	}
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var lg *slog.Logger

	switch env {
	case envLocal:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		lg = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		lg = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return lg
}
