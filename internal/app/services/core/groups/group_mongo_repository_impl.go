package groups

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

type GroupMongoRepository struct {
	Collection *mongo.Collection
}

func NewGroupMongoRepository(db *mongo.Client, dbName string) contracts.GroupRepository {
	return &GroupMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionGroups),
	}
}

func (r *GroupMongoRepository) CreateGroup(ctx context.Context, group *models.Group) (string, error) {
	result, err := r.Collection.InsertOne(ctx, group)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *GroupMongoRepository) FindGroupByID(ctx context.Context, groupID string) (*models.Group, error) {
	objectID, err := utils.ToObjectID(groupID)
	if err != nil {
		return nil, err
	}

	var group models.Group
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &group, nil
}

func (r *GroupMongoRepository) FindGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	objectID, err := utils.ToObjectID(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"$or": []bson.M{
			{"members": objectID},
			{"admin": objectID},
		},
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return groups, nil
}

func (r *GroupMongoRepository) UpdateGroup(ctx context.Context, group *models.Group) error {
	group.SetUpdatedAt()
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": group.ID}, group)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) SetGroupAdmin(ctx context.Context, groupID, adminID string) error {
	groupOID, err := utils.ToObjectID(groupID)
	if err != nil {
		return err
	}
	adminOID, err := utils.ToObjectID(adminID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"admin": adminOID, "updatedAt": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": groupOID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) AddGroupMembers(ctx context.Context, groupID string, memberIDs []string) error {
	groupOID, err := utils.ToObjectID(groupID)
	if err != nil {
		return err
	}
	memberOIDs, err := utils.ToObjectIDs(memberIDs)
	if err != nil {
		return err
	}

	update := bson.M{
		"$addToSet": bson.M{"members": bson.M{"$each": memberOIDs}},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": groupOID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) RemoveGroupMembers(ctx context.Context, groupID string, memberIDs []string) error {
	groupOID, err := utils.ToObjectID(groupID)
	if err != nil {
		return err
	}
	memberOIDs, err := utils.ToObjectIDs(memberIDs)
	if err != nil {
		return err
	}

	update := bson.M{
		"$pull": bson.M{"members": bson.M{"$in": memberOIDs}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": groupOID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) AddAppointmentToGroups(ctx context.Context, groupIDs []string, appointmentID string) error {
	groupOIDs, err := utils.ToObjectIDs(groupIDs)
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
	_, err = r.Collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": groupOIDs}}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) RemoveAppointmentFromGroups(ctx context.Context, groupIDs []string, appointmentID string) error {
	groupOIDs, err := utils.ToObjectIDs(groupIDs)
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
	_, err = r.Collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": groupOIDs}}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) HasOtherGroupWithAdmin(ctx context.Context, excludeGroupID, adminID string) (bool, error) {
	groupOID, err := utils.ToObjectID(excludeGroupID)
	if err != nil {
		return false, err
	}
	adminOID, err := utils.ToObjectID(adminID)
	if err != nil {
		return false, err
	}

	filter := bson.M{
		"_id":   bson.M{"$ne": groupOID},
		"admin": adminOID,
	}
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count > 0, nil
}

func (r *GroupMongoRepository) DeleteGroupByID(ctx context.Context, groupID string) error {
	objectID, err := utils.ToObjectID(groupID)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
