package router

import (
	"database/sql"
	"net/http"

	"jsonshare/config"
	docHandler "jsonshare/internal/document"
	"jsonshare/internal/document/repository"
	"jsonshare/internal/document/service"
	"jsonshare/internal/health"
	userrepo "jsonshare/internal/user/repository"
	"jsonshare/internal/webhook"
	"jsonshare/middleware"
)

const Version = "1.0.0"

func Setup(db *sql.DB, cfg config.Config) (http.Handler, error) {
	mux := http.NewServeMux()

	docRepo := repository.NewDocumentRepository(db)
	users := userrepo.NewUserRepository(db)
	docService := service.NewDocumentService(docRepo, users)
	docs := docHandler.NewDocumentHandler(docService)

	webhooks, err := webhook.NewWebhookHandler(users, cfg.Webhook.SigningSecret)
	if err != nil {
		return nil, err
	}

	healthCheck := health.NewHandler(db, Version, cfg.Environment)

	auth := middleware.Auth(cfg.Auth.JWTSecret)

	mux.Handle("GET /documents", auth(http.HandlerFunc(docs.ListDocuments)))
	mux.Handle("POST /documents", auth(http.HandlerFunc(docs.CreateDocument)))
	mux.Handle("GET /documents/{id}", auth(http.HandlerFunc(docs.GetDocument)))
	mux.Handle("PUT /documents/{id}", auth(http.HandlerFunc(docs.UpdateDocument)))
	mux.Handle("DELETE /documents/{id}", auth(http.HandlerFunc(docs.DeleteDocument)))

	// Share links are readable without authentication.
	mux.HandleFunc("GET /documents/public/{slug}", docs.GetPublicDocument)

	mux.HandleFunc("POST /webhooks/identity", webhooks.HandleIdentityEvent)
	mux.HandleFunc("GET /health", healthCheck.Health)

	return middleware.CORS(cfg.CORSOrigin)(middleware.Logging(mux)), nil
}
