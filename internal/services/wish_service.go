package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/internal/repository"
	"github.com/starwishteam/starwish/pkg/aidetect"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrLooksAIGenerated is returned when the wish text trips either the
// phrase blocklist or the remote detector.
var ErrLooksAIGenerated = errors.New("this wish seems AI-generated, please rephrase it more personally")

// WishInput is the payload for posting a new wish.
type WishInput struct {
	Text      string `json:"text"`
	Category  string `json:"category"`
	Location  string `json:"location"`
	Urgency   int    `json:"urgency"`
	Anonymous bool   `json:"anonymous"`
}

type WishService struct {
	repo     *repository.WishRepository
	voteRepo *repository.VoteRepository
	detector *aidetect.Client
}

func NewWishService(repo *repository.WishRepository, voteRepo *repository.VoteRepository, detector *aidetect.Client) *WishService {
	return &WishService{
		repo:     repo,
		voteRepo: voteRepo,
		detector: detector,
	}
}

// CreateWish validates and persists a new wish for the signed-in user.
func (s *WishService) CreateWish(ctx context.Context, claims *jwtutil.Claims, input *WishInput) (*models.Wish, error) {
	if strings.TrimSpace(input.Text) == "" || input.Category == "" || input.Location == "" {
		return nil, fmt.Errorf("text, category and location are required")
	}

	if input.Urgency == 0 {
		input.Urgency = 3
	}
	if input.Urgency < 1 || input.Urgency > 5 {
		return nil, fmt.Errorf("urgency must be between 1 and 5")
	}

	if err := screenWishText(ctx, s.detector, input.Text); err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	username := claims.Username
	if input.Anonymous {
		username = models.AnonymousName
	}

	wish := &models.Wish{
		UID:       userID,
		Username:  username,
		Text:      input.Text,
		Category:  input.Category,
		Location:  input.Location,
		Urgency:   input.Urgency,
		Anonymous: input.Anonymous,
		Status:    models.StatusPending,
	}

	created, err := s.repo.CreateWish(ctx, wish)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"wishID":  created.ID.Hex(),
		"urgency": created.Urgency,
	}).Info("Wish created")
	return created, nil
}

// screenWishText runs the local phrase blocklist first and only then the
// remote detector, so obviously AI-authored text never causes a network
// call.
func screenWishText(ctx context.Context, detector *aidetect.Client, text string) error {
	if aidetect.ContainsBlockedPhrase(text) {
		return ErrLooksAIGenerated
	}
	if detector.Detect(ctx, text) {
		return ErrLooksAIGenerated
	}
	return nil
}

// GetFeed returns all wishes newest-first, filtered by the optional search
// term.
func (s *WishService) GetFeed(ctx context.Context, searchTerm string) ([]models.Wish, error) {
	wishes, err := s.repo.GetAllWishes(ctx)
	if err != nil {
		return nil, err
	}
	return FilterWishes(wishes, searchTerm), nil
}

// FilterWishes keeps wishes whose text or location contains the term
// (case-insensitive), or whose urgency equals the term when it is a number.
// An empty term keeps everything.
func FilterWishes(wishes []models.Wish, term string) []models.Wish {
	keyword := strings.ToLower(strings.TrimSpace(term))
	if keyword == "" {
		return wishes
	}

	filtered := make([]models.Wish, 0, len(wishes))
	for _, w := range wishes {
		if strings.Contains(strings.ToLower(w.Text), keyword) ||
			strings.Contains(strings.ToLower(w.Location), keyword) ||
			strconv.Itoa(w.Urgency) == keyword {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

func (s *WishService) GetWishByID(ctx context.Context, id string) (*models.Wish, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid wish ID")
	}
	return s.repo.GetWishByID(ctx, objID)
}

// Vote records a like or dislike for the signed-in user. A repeated vote on
// the same wish is a silent no-op.
func (s *WishService) Vote(ctx context.Context, claims *jwtutil.Claims, wishID, voteType string) error {
	if voteType != models.VoteLike && voteType != models.VoteDislike {
		return fmt.Errorf("vote type must be %q or %q", models.VoteLike, models.VoteDislike)
	}

	objID, err := primitive.ObjectIDFromHex(wishID)
	if err != nil {
		return fmt.Errorf("invalid wish ID")
	}
	voterID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID")
	}

	if _, err := s.repo.GetWishByID(ctx, objID); err != nil {
		return fmt.Errorf("wish not found")
	}

	vote := &models.Vote{
		WishID:  objID,
		VoterID: voterID,
		Type:    voteType,
	}
	err = s.voteRepo.CastVote(ctx, vote)
	if errors.Is(err, repository.ErrAlreadyVoted) {
		logrus.WithFields(logrus.Fields{
			"wishID": wishID,
			"userID": claims.UserID,
		}).Info("Duplicate vote ignored")
		return nil
	}
	return err
}

// GetUserVotes returns a wishID -> vote type map for the signed-in user.
func (s *WishService) GetUserVotes(ctx context.Context, claims *jwtutil.Claims) (map[string]string, error) {
	voterID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	votes, err := s.voteRepo.GetVotesByUser(ctx, voterID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(votes))
	for _, v := range votes {
		result[v.WishID.Hex()] = v.Type
	}
	return result, nil
}

// checkDeletable holds the eligibility rules for removing a wish: author
// only, and only while the wish is not yet fulfilled.
func checkDeletable(wish *models.Wish, claims *jwtutil.Claims) error {
	if wish.UID.Hex() != claims.UserID {
		return fmt.Errorf("you can only delete your own wishes")
	}
	if wish.Fulfilled {
		return fmt.Errorf("fulfilled wishes cannot be deleted")
	}
	return nil
}

// DeleteWish removes a wish and its votes. The wish goes first; a failure
// while removing the votes is reported but the wish stays deleted.
func (s *WishService) DeleteWish(ctx context.Context, claims *jwtutil.Claims, wishID string) error {
	objID, err := primitive.ObjectIDFromHex(wishID)
	if err != nil {
		return fmt.Errorf("invalid wish ID")
	}

	wish, err := s.repo.GetWishByID(ctx, objID)
	if err != nil {
		return fmt.Errorf("wish not found")
	}

	if err := checkDeletable(wish, claims); err != nil {
		return err
	}

	if err := s.repo.DeleteWish(ctx, objID); err != nil {
		return err
	}

	if _, err := s.voteRepo.DeleteVotesByWish(ctx, objID); err != nil {
		logrus.WithError(err).WithField("wishID", wishID).Error("Failed to delete votes of removed wish")
		return fmt.Errorf("wish deleted, but removing its votes failed: %v", err)
	}

	logrus.WithField("wishID", wishID).Info("Wish deleted")
	return nil
}
