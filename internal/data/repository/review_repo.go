package repository

import (
	"context"
	"fmt"

	"vehicle-rental/internal/data/entity"
	"vehicle-rental/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByRental(ctx context.Context, rentalID uuid.UUID) ([]*entity.Review, error)
	ExistsByRentalAndReviewer(ctx context.Context, rentalID, reviewerID uuid.UUID, target entity.ReviewTarget) (bool, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, rental_id, reviewer_id, target, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.RentalID,
		review.ReviewerID,
		review.Target,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("rental_id", review.RentalID.String()),
		)
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByRental(ctx context.Context, rentalID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, rental_id, reviewer_id, target, rating, comment, created_at
		FROM reviews
		WHERE rental_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, rentalID)
	if err != nil {
		r.log.Error("Failed to list rental reviews",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("find reviews for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.RentalID,
			&review.ReviewerID,
			&review.Target,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) ExistsByRentalAndReviewer(ctx context.Context, rentalID, reviewerID uuid.UUID, target entity.ReviewTarget) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews
			WHERE rental_id = $1 AND reviewer_id = $2 AND target = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, rentalID, reviewerID, target).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check review existence",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return false, fmt.Errorf("check review for rental %s: %w", rentalID.String(), err)
	}

	return exists, nil
}
