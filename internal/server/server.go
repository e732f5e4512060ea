// Package server exposes the sync engine over HTTP for the reservation CRUD
// application. Sync failures never become HTTP errors: every sync endpoint
// answers 200 with a Result body, keeping the Call Log a fire-and-forget
// side channel for its callers.
package server

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"

	"github.com/MPC-IT/calllog-sync/internal/audit"
	"github.com/MPC-IT/calllog-sync/internal/calllog"
	"github.com/MPC-IT/calllog-sync/internal/config"
	"github.com/MPC-IT/calllog-sync/internal/sheets"
)

// errNoCredentials signals that a request carried no access token and no
// service-account fallback is configured. Treated as a silent skip.
var errNoCredentials = errors.New("no access token and no service-account credentials configured")

// ClientFactory builds a sheet client for one request's access token.
// Injectable so tests can substitute a fake backend.
type ClientFactory func(ctx context.Context, accessToken string) (calllog.SheetAPI, error)

// Server wires the HTTP handlers to the sync engine.
type Server struct {
	cfg       config.Config
	writer    *calllog.Writer
	audits    *audit.Store // nil when no database is configured
	clientFor ClientFactory
}

// New builds a Server. factory may be nil, in which case the real Google
// Sheets client is used.
func New(cfg config.Config, writer *calllog.Writer, audits *audit.Store, factory ClientFactory) *Server {
	s := &Server{cfg: cfg, writer: writer, audits: audits, clientFor: factory}
	if s.clientFor == nil {
		s.clientFor = s.sheetsClient
	}
	return s
}

// sheetsClient is the production ClientFactory: per-request user token,
// falling back to the configured service account.
func (s *Server) sheetsClient(ctx context.Context, accessToken string) (calllog.SheetAPI, error) {
	if accessToken != "" {
		return sheets.NewClient(ctx, sheets.AccessTokenSource(accessToken))
	}
	if s.cfg.CredentialsFile != "" {
		ts, err := sheets.CredentialsTokenSource(ctx, s.cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return sheets.NewClient(ctx, ts)
	}
	return nil, errNoCredentials
}

// App assembles the iris application.
func (s *Server) App() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	api := app.Party("/api")
	{
		api.Get("/health", s.health)

		cl := api.Party("/calllog")
		cl.Post("/entries", s.addEntry)
		cl.Post("/entries/update", s.updateEntry)
		cl.Post("/entries/remove", s.removeEntry)
		cl.Get("/audit", s.listAudit)
	}

	return app
}

func (s *Server) health(ctx iris.Context) {
	ctx.JSON(iris.Map{"status": "ok"})
}
