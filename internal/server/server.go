package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/observability"
	obscontext "github.com/smallbiznis/fatura/internal/observability/context"
	obsmiddleware "github.com/smallbiznis/fatura/internal/observability/logger"
	obstracing "github.com/smallbiznis/fatura/internal/observability/tracing"
	"github.com/smallbiznis/fatura/internal/workspace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	log    *zap.Logger
	ws     *workspace.Workspace
}

type ServerParams struct {
	fx.In

	Gin       *gin.Engine
	Cfg       config.Config
	Log       *zap.Logger
	Workspace *workspace.Workspace
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine: p.Gin,
		cfg:    p.Cfg,
		log:    p.Log.Named("http.server"),
		ws:     p.Workspace,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.sessionContext())

	// -------- Session --------
	api.GET("/session", s.GetSession)
	api.PUT("/session/language", s.SetLanguage)
	api.PUT("/session/theme", s.SetThemeMode)
	api.POST("/session/theme/toggle", s.ToggleTheme)
	api.PUT("/session/tab", s.SetTab)
	api.GET("/labels", s.GetLabels)

	// -------- Draft --------
	api.GET("/draft", s.GetDraft)
	api.POST("/draft/new", s.NewInvoice)
	api.PATCH("/draft/fields", s.UpdateDraftField)
	api.GET("/draft/totals", s.GetDraftTotals)

	api.POST("/draft/items", s.AddItem)
	api.PATCH("/draft/items/:index", s.UpdateItem)
	api.DELETE("/draft/items/:index", s.RemoveItem)

	api.POST("/draft/extra-sections", s.AddExtraSection)
	api.PATCH("/draft/extra-sections/:index", s.UpdateExtraSection)
	api.DELETE("/draft/extra-sections/:index", s.RemoveExtraSection)

	api.POST("/draft/save", s.SaveDraftToHistory)
	api.GET("/draft/preview", s.PreviewDraft)
	api.GET("/draft/print", s.PrintDraft)
	api.POST("/draft/export", s.ExportDraft)
	api.GET("/exports/:id", s.GetExport)

	// -------- History --------
	api.GET("/history", s.ListHistory)
	api.POST("/history/:id/load", s.LoadHistoryEntry)

	// -------- Defaults --------
	api.GET("/defaults", s.GetDefaults)
	api.POST("/defaults", s.SaveDefaults)
	api.POST("/defaults/apply", s.ApplyDefaults)

	// -------- Templates --------
	api.GET("/templates", s.ListInvoiceTemplates)
	api.POST("/templates", s.CreateInvoiceTemplate)
	api.POST("/templates/:id/apply", s.ApplyInvoiceTemplate)
	api.DELETE("/templates/:id", s.DeleteInvoiceTemplate)
}

// sessionContext tags the request context with the working draft id.
func (s *Server) sessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := obscontext.WithSessionID(c.Request.Context(), s.ws.Draft().ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
