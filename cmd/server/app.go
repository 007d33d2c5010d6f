package main

import (
	"context"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-wills/internal/config"
	"github.com/diewo77/go-wills/internal/localize"
	"github.com/diewo77/go-wills/internal/mailer"
	"github.com/diewo77/go-wills/internal/pdf"
	"github.com/diewo77/go-wills/internal/server"
	"github.com/diewo77/go-wills/internal/services"
)

// App wires the collaborators behind the HTTP surface: the Gemini localizer
// (absent when no API key is configured), the SMTP mailer for deletion codes,
// and the headless-chrome PDF renderer.
type App struct {
	Handler http.Handler
	pdf     *pdf.Chrome
}

func NewApp(cfg config.Config, dbConn *gorm.DB) (*App, error) {
	var loc services.Localizer
	if cfg.GeminiAPIKey != "" {
		g, err := localize.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		loc = g
	} else {
		log.Println("GEMINI_API_KEY not set; localization disabled")
	}

	smtp := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	del := services.NewDeleteFlow(dbConn, smtp)
	chrome := pdf.NewChrome()

	return &App{
		Handler: server.New(dbConn, loc, del, chrome),
		pdf:     chrome,
	}, nil
}

func (a *App) Close() {
	if err := a.pdf.Close(); err != nil {
		log.Println("closing pdf renderer:", err)
	}
}
