package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/starwishteam/starwish/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishRepository struct {
	collection *mongo.Collection
}

func NewWishRepository(db *mongo.Database) *WishRepository {
	return &WishRepository{collection: db.Collection("wishes")}
}

func (r *WishRepository) CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	wish.CreatedAt = time.Now()
	wish.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, wish)
	if err != nil {
		return nil, fmt.Errorf("failed to create wish: %v", err)
	}

	wish.ID = result.InsertedID.(primitive.ObjectID)
	return wish, nil
}

func (r *WishRepository) GetWishByID(ctx context.Context, id primitive.ObjectID) (*models.Wish, error) {
	var wish models.Wish
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&wish); err != nil {
		return nil, fmt.Errorf("failed to get wish: %v", err)
	}
	return &wish, nil
}

// GetAllWishes returns every wish, newest first. The feed filters client-side
// style in the service, so no search conditions live here.
func (r *WishRepository) GetAllWishes(ctx context.Context) ([]models.Wish, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishes: %v", err)
	}
	defer cursor.Close(ctx)

	var wishes []models.Wish
	if err := cursor.All(ctx, &wishes); err != nil {
		return nil, fmt.Errorf("failed to decode wishes: %v", err)
	}
	return wishes, nil
}

func (r *WishRepository) GetWishesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Wish, error) {
	return r.findWishes(ctx, bson.M{"uid": userID})
}

// GetWishesByUsername looks up wishes by the denormalized display name.
// Anonymous wishes carry the "Anonymous" name, so they never match a real
// username here.
func (r *WishRepository) GetWishesByUsername(ctx context.Context, username string) ([]models.Wish, error) {
	return r.findWishes(ctx, bson.M{"username": username})
}

func (r *WishRepository) GetWishesByFulfiller(ctx context.Context, fulfiller string) ([]models.Wish, error) {
	return r.findWishes(ctx, bson.M{"fulfiller": fulfiller, "fulfilled": true})
}

func (r *WishRepository) GetFulfilledWishes(ctx context.Context) ([]models.Wish, error) {
	return r.findWishes(ctx, bson.M{"fulfilled": true})
}

func (r *WishRepository) findWishes(ctx context.Context, filter bson.M) ([]models.Wish, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishes: %v", err)
	}
	defer cursor.Close(ctx)

	var wishes []models.Wish
	if err := cursor.All(ctx, &wishes); err != nil {
		return nil, fmt.Errorf("failed to decode wishes: %v", err)
	}
	return wishes, nil
}

// MarkFulfilling flips a wish from pending to fulfilling, recording the
// fulfiller's display name and stable id. The status condition makes this a
// compare-and-set: when two users race, only one update matches.
func (r *WishRepository) MarkFulfilling(ctx context.Context, id primitive.ObjectID, fulfiller, fulfillerUID string) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": bson.M{
			"status":        models.StatusFulfilling,
			"fulfiller":     fulfiller,
			"fulfiller_uid": fulfillerUID,
			"fulfilled":     false,
			"updated_at":    time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark wish fulfilling: %v", err)
	}
	return result.ModifiedCount == 1, nil
}

// MarkFulfilled completes a wish; only valid from the fulfilling status.
func (r *WishRepository) MarkFulfilled(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusFulfilling},
		bson.M{"$set": bson.M{
			"status":     models.StatusFulfilled,
			"fulfilled":  true,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark wish fulfilled: %v", err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *WishRepository) DeleteWish(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete wish: %v", err)
	}
	return nil
}
