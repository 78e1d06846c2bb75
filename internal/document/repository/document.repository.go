package repository

import (
	"context"
	"database/sql"

	"jsonshare/internal/document/model"
	"jsonshare/pkg/logger"
)

const documentColumns = "id, title, content, slug, user_id, created_at, updated_at"

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Insert(ctx context.Context, doc *model.Document) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO json_documents (id, title, content, slug, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		doc.ID, doc.Title, doc.Content, doc.Slug, doc.UserID,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert document %s: %v", doc.ID, err)
	}
	return err
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, userID string) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM json_documents WHERE user_id = $1 ORDER BY updated_at DESC",
		userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list documents for user %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Slug, &doc.UserID, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// FindByIDAndOwner matches id and owner in a single query so that a document
// owned by someone else is indistinguishable from one that does not exist.
func (r *DocumentRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Document, error) {
	return r.findOne(ctx,
		"SELECT "+documentColumns+" FROM json_documents WHERE id = $1 AND user_id = $2",
		id, userID)
}

func (r *DocumentRepository) FindBySlug(ctx context.Context, slug string) (*model.Document, error) {
	return r.findOne(ctx,
		"SELECT "+documentColumns+" FROM json_documents WHERE slug = $1",
		slug)
}

// Update applies the non-nil fields and refreshes updated_at in one
// conditional statement. sql.ErrNoRows means not owned or already gone.
func (r *DocumentRepository) Update(ctx context.Context, id, userID string, title, content *string) (*model.Document, error) {
	var doc model.Document
	err := r.DB.QueryRowContext(ctx,
		`UPDATE json_documents
		 SET title = COALESCE($3, title), content = COALESCE($4, content), updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+documentColumns,
		id, userID, title, content,
	).Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Slug, &doc.UserID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to update document %s: %v", id, err)
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id, userID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM json_documents WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete document %s: %v", id, err)
		return 0, err
	}
	return result.RowsAffected()
}

func (r *DocumentRepository) findOne(ctx context.Context, query string, args ...any) (*model.Document, error) {
	var doc model.Document
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Slug, &doc.UserID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to fetch document: %v", err)
		}
		return nil, err
	}
	return &doc, nil
}
