package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fazetwerpgit/saleshub_backend/config"
	"github.com/fazetwerpgit/saleshub_backend/models"
)

type MongoTrainingRepository struct {
	resources *mongo.Collection
	progress  *mongo.Collection
}

func NewTrainingRepository(db *mongo.Client) *MongoTrainingRepository {
	return &MongoTrainingRepository{
		resources: config.GetCollection(db, "training"),
		progress:  config.GetCollection(db, "userProgress"),
	}
}

func (r *MongoTrainingRepository) InsertResource(ctx context.Context, resource *models.TrainingResource) error {
	if resource.ID.IsZero() {
		resource.ID = primitive.NewObjectID()
	}
	_, err := r.resources.InsertOne(ctx, resource)
	return err
}

func (r *MongoTrainingRepository) FindResourceByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingResource, error) {
	var resource models.TrainingResource
	err := r.resources.FindOne(ctx, bson.M{"_id": id}).Decode(&resource)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &resource, nil
}

func (r *MongoTrainingRepository) ListResources(ctx context.Context) ([]models.TrainingResource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.resources.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	resources := []models.TrainingResource{}
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *MongoTrainingRepository) UpdateResource(ctx context.Context, id primitive.ObjectID, resource *models.TrainingResource) error {
	_, err := r.resources.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":       resource.Title,
			"category":    resource.Category,
			"url":         resource.URL,
			"description": resource.Description,
			"updatedAt":   time.Now(),
		}},
	)
	return err
}

func (r *MongoTrainingRepository) DeleteResource(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.resources.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoTrainingRepository) UpsertProgress(ctx context.Context, progress *models.UserProgress) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.progress.UpdateOne(
		ctx,
		bson.M{"userId": progress.UserID, "resourceId": progress.ResourceID},
		bson.M{"$set": bson.M{
			"completed":   progress.Completed,
			"completedAt": progress.CompletedAt,
		}},
		opts,
	)
	return err
}

func (r *MongoTrainingRepository) ListProgressByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserProgress, error) {
	cursor, err := r.progress.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	progress := []models.UserProgress{}
	if err := cursor.All(ctx, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}
