package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/starwishteam/starwish/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAlreadyVoted is returned when the (wish, voter) pair already has a
// vote record. Callers treat it as a silent no-op.
var ErrAlreadyVoted = errors.New("vote already cast")

type VoteRepository struct {
	votes  *mongo.Collection
	wishes *mongo.Collection
	client *mongo.Client
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{
		votes:  db.Collection("votes"),
		wishes: db.Collection("wishes"),
		client: db.Client(),
	}
}

// CastVote records a vote and increments the matching counter on the wish
// inside a single transaction, so an observer never sees one without the
// other.
func (r *VoteRepository) CastVote(ctx context.Context, vote *models.Vote) error {
	vote.CreatedAt = time.Now()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.votes.CountDocuments(sc, bson.M{"wish_id": vote.WishID, "voter_id": vote.VoterID})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrAlreadyVoted
		}

		result, err := r.votes.InsertOne(sc, vote)
		if err != nil {
			return nil, err
		}
		vote.ID = result.InsertedID.(primitive.ObjectID)

		counter := "likes"
		if vote.Type == models.VoteDislike {
			counter = "dislikes"
		}
		_, err = r.wishes.UpdateOne(sc,
			bson.M{"_id": vote.WishID},
			bson.M{"$inc": bson.M{counter: 1}},
		)
		return nil, err
	})
	if errors.Is(err, ErrAlreadyVoted) {
		return ErrAlreadyVoted
	}
	if err != nil {
		return fmt.Errorf("failed to cast vote: %v", err)
	}
	return nil
}

func (r *VoteRepository) HasVoted(ctx context.Context, wishID, voterID primitive.ObjectID) (bool, error) {
	count, err := r.votes.CountDocuments(ctx, bson.M{"wish_id": wishID, "voter_id": voterID})
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %v", err)
	}
	return count > 0, nil
}

// GetVotesByUser returns every vote a user has cast, for marking voted
// wishes in the feed.
func (r *VoteRepository) GetVotesByUser(ctx context.Context, voterID primitive.ObjectID) ([]models.Vote, error) {
	cursor, err := r.votes.Find(ctx, bson.M{"voter_id": voterID})
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %v", err)
	}
	defer cursor.Close(ctx)

	var votes []models.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, fmt.Errorf("failed to decode votes: %v", err)
	}
	return votes, nil
}

func (r *VoteRepository) DeleteVotesByWish(ctx context.Context, wishID primitive.ObjectID) (int64, error) {
	result, err := r.votes.DeleteMany(ctx, bson.M{"wish_id": wishID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %v", err)
	}
	return result.DeletedCount, nil
}
