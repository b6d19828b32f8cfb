package users

import (
	"context"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/constvars"
	"mawaid-service/internal/pkg/exceptions"
	"mawaid-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserMongoRepository struct {
	Collection *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Client, dbName string) contracts.UserRepository {
	return &UserMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionUsers),
	}
}

func (r *UserMongoRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	result, err := r.Collection.InsertOne(ctx, user)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *UserMongoRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	objectID, err := utils.ToObjectID(userID)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}

func (r *UserMongoRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}

func (r *UserMongoRepository) FindAllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return users, nil
}

func (r *UserMongoRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.SetUpdatedAt()
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *UserMongoRepository) SetUserRole(ctx context.Context, userID, role string) error {
	objectID, err := utils.ToObjectID(userID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *UserMongoRepository) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}

func (r *UserMongoRepository) AddAppointmentToUser(ctx context.Context, userID, appointmentID string) error {
	userOID, err := utils.ToObjectID(userID)
	if err != nil {
		return err
	}
	appointmentOID, err := utils.ToObjectID(appointmentID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$addToSet": bson.M{"appointments": appointmentOID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": userOID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *UserMongoRepository) RemoveAppointmentFromUsers(ctx context.Context, userIDs []string, appointmentID string) error {
	userOIDs, err := utils.ToObjectIDs(userIDs)
	if err != nil {
		return err
	}
	appointmentOID, err := utils.ToObjectID(appointmentID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$pull": bson.M{"appointments": appointmentOID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err = r.Collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": userOIDs}}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *UserMongoRepository) AddGroupToUsers(ctx context.Context, userIDs []string, groupID string) error {
	userOIDs, err := utils.ToObjectIDs(userIDs)
	if err != nil {
		return err
	}
	groupOID, err := utils.ToObjectID(groupID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$addToSet": bson.M{"groups": groupOID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	_, err = r.Collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": userOIDs}}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *UserMongoRepository) RemoveGroupFromUsers(ctx context.Context, userIDs []string, groupID string) error {
	userOIDs, err := utils.ToObjectIDs(userIDs)
	if err != nil {
		return err
	}
	groupOID, err := utils.ToObjectID(groupID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$pull": bson.M{"groups": groupOID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err = r.Collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": userOIDs}}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *UserMongoRepository) DeleteUserByID(ctx context.Context, userID string) error {
	objectID, err := utils.ToObjectID(userID)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
