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

type MongoSaleRepository struct {
	collection *mongo.Collection
}

func NewSaleRepository(db *mongo.Client) *MongoSaleRepository {
	return &MongoSaleRepository{
		collection: config.GetCollection(db, "sales"),
	}
}

func (r *MongoSaleRepository) Insert(ctx context.Context, sale *models.Sale) error {
	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, sale)
	return err
}

func (r *MongoSaleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error) {
	var sale models.Sale
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sale)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (r *MongoSaleRepository) FindByStatus(ctx context.Context, status string) ([]models.Sale, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := []models.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *MongoSaleRepository) FindBySalesRep(ctx context.Context, repID primitive.ObjectID) ([]models.Sale, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"salesRepId": repID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := []models.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// Resolve writes the terminal status with a filter on the current
// pending status. Two concurrent approvers cannot both match: the
// store applies the update atomically, so the loser sees matched=false
// instead of overwriting the winner.
func (r *MongoSaleRepository) Resolve(ctx context.Context, id primitive.ObjectID, res SaleResolution) (bool, error) {
	set := bson.M{
		"status":       res.Status,
		"approvedBy":   res.ApprovedBy,
		"approverName": res.ApproverName,
		"approvedAt":   res.ApprovedAt,
		"updatedAt":    time.Now(),
	}
	if res.RejectionReason != "" {
		set["rejectionReason"] = res.RejectionReason
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.SaleStatusPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount > 0, nil
}
