package reviews

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"
)

type ReviewsStorage interface {
	Get(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Review, error)
	ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
	Insert(ctx context.Context, comment string, rating float64, movieID, userID int64) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewsStorage
}

func New(log *slog.Logger, storage ReviewsStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
	}
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Get"
	log := s.log.With("op", op, "id", id)
	review, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

// ListForCaller returns every review for a superuser and only the caller's
// own reviews for anyone else.
func (s *ReviewService) ListForCaller(ctx context.Context, caller *models.User) ([]models.Review, error) {
	const op = "reviews.ReviewService.ListForCaller"
	var (
		reviews []models.Review
		err     error
	)
	if caller.IsSuperuser {
		reviews, err = s.storage.List(ctx)
	} else {
		reviews, err = s.storage.ListForUser(ctx, caller.ID)
	}
	if err != nil {
		s.log.With("op", op, "user_id", caller.ID).Error(err.Error())
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	const op = "reviews.ReviewService.ListForMovie"
	reviews, err := s.storage.ListForMovie(ctx, movieID)
	if err != nil {
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return reviews, nil
}

// Create attaches the review to the given movie and user. Both come from the
// request path and the authenticated caller, never from the payload.
func (s *ReviewService) Create(ctx context.Context, comment string, rating float64, movieID, userID int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "movie_id", movieID, "user_id", userID)
	review, err := s.storage.Insert(ctx, comment, rating, movieID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidRef) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

type UpdateReviewParams struct {
	Comment *string
	Rating  *float64
}

func (s *ReviewService) Update(ctx context.Context, id int64, params UpdateReviewParams) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "id", id)
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Comment != nil {
		review.Comment = *params.Comment
	}
	if params.Rating != nil {
		review.Rating = *params.Rating
	}
	updated, err := s.storage.Update(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
