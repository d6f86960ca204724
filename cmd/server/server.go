package main

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/precificalc/internal/display"
	"github.com/Simplici0/precificalc/internal/pricing"
	"github.com/Simplici0/precificalc/internal/products"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"calculator.html", "products.html", "product_edit.html", "login.html"}

type server struct {
	products   *products.Service
	auth       *authService
	logger     *zap.Logger
	apiLimiter *ipRateLimiter
	templates  map[string]*template.Template
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
	UserName       string
}

func newServer(svc *products.Service, auth *authService, logger *zap.Logger, apiLimiter *ipRateLimiter) (*server, error) {
	funcs := template.FuncMap{
		"currency":    display.Currency,
		"percent":     display.Percent,
		"margin":      display.DesiredMargin,
		"barWidth":    display.BarWidth,
		"date":        display.Date,
		"methodLabel": func(m pricing.Method) string { return m.Label() },
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &server{
		products:   svc,
		auth:       auth,
		logger:     logger,
		apiLimiter: apiLimiter,
		templates:  templates,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.auth.sessionMiddleware)

	r.Get("/", s.handleCalculatorForm)
	r.Post("/calculate", s.handleCalculate)

	r.Get("/products", s.handleProductsList)
	r.Post("/products", s.handleProductCreate)
	r.Get("/products/{id}/edit", s.handleProductEdit)
	r.Post("/products/{id}", s.handleProductUpdate)
	r.Post("/products/{id}/delete", s.handleProductDelete)
	r.Get("/export/{format}", s.handleExport)

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.apiLimiter.middleware)
		r.Post("/calculate", s.handleAPICalculate)
		r.Get("/products", s.handleAPIProducts)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// baseView fills the flash messages from the query string and the greeting
// from the session.
func (s *server) baseView(r *http.Request) baseViewData {
	return baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
		UserName:       greetingName(userFromContext(r.Context())),
	}
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.logger.Error("unknown template", zap.String("page", page))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
