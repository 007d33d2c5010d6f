package server

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-wills/internal/auth"
	"github.com/diewo77/go-wills/internal/handlers"
	"github.com/diewo77/go-wills/internal/httpx"
	"github.com/diewo77/go-wills/internal/pdf"
	"github.com/diewo77/go-wills/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, loc services.Localizer, del *services.DeleteFlow, renderer pdf.Renderer) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	svc := services.NewWillService(db, loc)
	wh := handlers.NewWillHandler(db, svc, del, renderer)

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	mux.Handle("/wills", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			wh.List(w, r)
		case http.MethodPost:
			wh.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/wills/get", protected(wh.Get))
	mux.Handle("/wills/save", protected(postOnly(wh.Save)))
	mux.Handle("/wills/generate", protected(postOnly(wh.Generate)))
	mux.Handle("/wills/preview", protected(postOnly(wh.Preview)))
	mux.Handle("/wills/finalize", protected(postOnly(wh.Finalize)))
	mux.Handle("/wills/pdf", protected(wh.Export))
	mux.Handle("/wills/delete/request", protected(postOnly(wh.DeleteRequest)))
	mux.Handle("/wills/delete/verify", protected(postOnly(wh.DeleteVerify)))

	return withRecover(withLogging(mux))
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic: %v\n%s", rec, debug.Stack())
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
