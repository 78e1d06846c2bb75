package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"reflect"
	"strings"

	"jsonshare/internal/document/model"
	"jsonshare/internal/document/repository"
	userrepo "jsonshare/internal/user/repository"
	"jsonshare/pkg/apperr"
	"jsonshare/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	// URL-safe alphabet, 64 characters so a masked random byte indexes it
	// without bias.
	slugAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	slugLength   = 10

	// A fresh slug colliding with an existing one is astronomically unlikely;
	// retry a few times before giving up with a conflict.
	slugAttempts = 3

	slugConstraint = "json_documents_slug_key"
)

type DocumentService struct {
	Repo     *repository.DocumentRepository
	Users    *userrepo.UserRepository
	validate *validator.Validate
}

func NewDocumentService(repo *repository.DocumentRepository, users *userrepo.UserRepository) *DocumentService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &DocumentService{Repo: repo, Users: users, validate: v}
}

func (s *DocumentService) List(ctx context.Context, userID string) ([]model.Document, error) {
	docs, err := s.Repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return docs, nil
}

func (s *DocumentService) Create(ctx context.Context, userID string, req model.CreateDocumentRequest) (*model.Document, error) {
	if err := s.checkValid(req); err != nil {
		return nil, err
	}

	// Lazily materialize the user row; the webhook fills in the email later.
	if err := s.Users.EnsureExists(ctx, userID); err != nil {
		return nil, apperr.FromStore(err)
	}

	for attempt := 0; attempt < slugAttempts; attempt++ {
		slug := generateSlug()
		if slug == "" {
			return nil, apperr.Internal("Failed to generate slug")
		}
		doc := &model.Document{
			ID:      uuid.NewString(),
			Title:   req.Title,
			Content: req.Content,
			Slug:    slug,
			UserID:  userID,
		}
		err := s.Repo.Insert(ctx, doc)
		if err == nil {
			return doc, nil
		}
		if apperr.IsUniqueViolation(err, slugConstraint) {
			logger.Sugar.Warnf("Slug collision on attempt %d for user %s, regenerating", attempt+1, userID)
			continue
		}
		return nil, apperr.FromStore(err)
	}
	return nil, apperr.Conflict("A document with this slug already exists")
}

func (s *DocumentService) Get(ctx context.Context, userID, id string) (*model.Document, error) {
	doc, err := s.Repo.FindByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return doc, nil
}

func (s *DocumentService) Update(ctx context.Context, userID, id string, req model.UpdateDocumentRequest) (*model.Document, error) {
	if err := s.checkValid(req); err != nil {
		return nil, err
	}
	doc, err := s.Repo.Update(ctx, id, userID, req.Title, req.Content)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, userID, id string) error {
	rowsAffected, err := s.Repo.Delete(ctx, id, userID)
	if err != nil {
		return apperr.FromStore(err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("Document not found")
	}
	return nil
}

// GetPublic is the one read path without an ownership check: anyone holding
// the slug may read the document.
func (s *DocumentService) GetPublic(ctx context.Context, slug string) (*model.Document, error) {
	doc, err := s.Repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return doc, nil
}

func (s *DocumentService) checkValid(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("Internal server error")
	}
	details := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperr.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return apperr.Validation(details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "json":
		return "must be valid JSON"
	default:
		return "is invalid"
	}
}

// notFoundOr hides ownership mismatch behind the same NotFound a missing row
// produces.
func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Document not found")
	}
	return apperr.FromStore(err)
}

func generateSlug() string {
	b := make([]byte, slugLength)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	for i, c := range b {
		b[i] = slugAlphabet[c&63]
	}
	return string(b)
}
