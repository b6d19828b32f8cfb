package appointments

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AppointmentMongoRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := utils.ToObjectID(appointmentID)
	if err != nil {
		return nil, err
	}

	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindAppointmentsByAttendee(ctx context.Context, userID string) ([]models.Appointment, error) {
	objectID, err := utils.ToObjectID(userID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"attendance": objectID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) FindAppointments(ctx context.Context, listFilter contracts.AppointmentListFilter, page, pageSize int) ([]models.Appointment, int64, error) {
	filter := bson.M{}
	if listFilter.Status != "" {
		filter["status"] = models.AppointmentStatus(listFilter.Status)
	}
	switch {
	case listFilter.StartingDate != "":
		filter["startingDate"] = listFilter.StartingDate
	case listFilter.FromDate != "" || listFilter.ToDate != "":
		bounds := bson.M{}
		if listFilter.FromDate != "" {
			bounds["$gte"] = listFilter.FromDate
		}
		if listFilter.ToDate != "" {
			bounds["$lte"] = listFilter.ToDate
		}
		filter["startingDate"] = bounds
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "startingDate", Value: 1}, {Key: "startingTime", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, total, nil
}

func (r *AppointmentMongoRepository) FindAppointmentsByStatuses(ctx context.Context, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"status": bson.M{"$in": statuses}})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	appointment.SetUpdatedAt()
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": appointment.ID}, appointment)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) UpdateAppointmentStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error {
	objectID, err := utils.ToObjectID(appointmentID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// AddAcceptance folds the eligibility checks into the update filter so that
// two concurrent accepts cannot both succeed: the document must list the user
// in attendance and must not yet list them in acceptedBy.
func (r *AppointmentMongoRepository) AddAcceptance(ctx context.Context, appointmentID, userID string) (bool, error) {
	appointmentOID, err := utils.ToObjectID(appointmentID)
	if err != nil {
		return false, err
	}
	userOID, err := utils.ToObjectID(userID)
	if err != nil {
		return false, err
	}

	filter := bson.M{
		"_id":        appointmentOID,
		"attendance": userOID,
		"acceptedBy": bson.M{"$ne": userOID},
	}
	update := bson.M{
		"$addToSet": bson.M{"acceptedBy": userOID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

// AppendRatingEntry pushes the entry only while no prior entry by the same
// rater exists inside the window, so the duplicate check and the write are a
// single compare-and-set against the document.
func (r *AppointmentMongoRepository) AppendRatingEntry(ctx context.Context, appointmentID string, entry *models.RatingLedgerEntry, window contracts.RatingWindow, markCompleted bool) (bool, error) {
	appointmentOID, err := utils.ToObjectID(appointmentID)
	if err != nil {
		return false, err
	}

	elemMatch := bson.M{"ratedBy": entry.RatedBy}
	if !window.SingleDay {
		elemMatch["ratedAt"] = bson.M{
			"$gte": window.DayStart,
			"$lt":  window.DayEnd,
		}
	}

	filter := bson.M{
		"_id":    appointmentOID,
		"rating": bson.M{"$not": bson.M{"$elemMatch": elemMatch}},
	}

	set := bson.M{"updatedAt": time.Now()}
	if markCompleted {
		set["status"] = models.StatusCompleted
	}
	update := bson.M{
		"$push": bson.M{"rating": entry},
		"$set":  set,
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (r *AppointmentMongoRepository) DeleteAppointmentByID(ctx context.Context, appointmentID string) error {
	objectID, err := utils.ToObjectID(appointmentID)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
