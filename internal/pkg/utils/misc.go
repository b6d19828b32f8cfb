package utils

import (
	"mawaid-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ToObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, exceptions.ErrMongoDBNotObjectID(err)
	}
	return objectID, nil
}

func ToObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := ToObjectID(id)
		if err != nil {
			return nil, err
		}
		objectIDs = append(objectIDs, objectID)
	}
	return objectIDs, nil
}

func ToHexIDs(objectIDs []primitive.ObjectID) []string {
	ids := make([]string, 0, len(objectIDs))
	for _, objectID := range objectIDs {
		ids = append(ids, objectID.Hex())
	}
	return ids
}
