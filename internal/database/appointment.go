package repository

import (
	"DriveLine/entity"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertAppointment fails on duplicate reference IDs so the caller can
// retry with the next sequence number.
func (m *MongoDB) InsertAppointment(appt entity.Appointment) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)

	_, err = collection.InsertOne(m.ctx, appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("appointment %s already exists: %w", appt.ID, err)
		}
		return fmt.Errorf("mongodb insert appointment: %w", err)
	}

	return nil
}

func (m *MongoDB) GetAppointment(id string) (*entity.Appointment, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)
	filter := bson.D{{Key: "_id", Value: id}}

	var appt entity.Appointment
	err = collection.FindOne(m.ctx, filter).Decode(&appt)
	if err != nil {
		return nil, m.findError(err)
	}

	return &appt, nil
}

func (m *MongoDB) UpdateAppointmentStatus(id string, status entity.AppointmentStatus) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update appointment status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}

	return nil
}

func (m *MongoDB) UpdateAppointmentTime(id string, dateTime time.Time) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "date_time", Value: dateTime}}}}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update appointment time: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}

	return nil
}

// GetAppointmentsBetween returns confirmed appointments inside [from, to).
func (m *MongoDB) GetAppointmentsBetween(from, to time.Time) ([]entity.Appointment, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)

	filter := bson.D{
		{Key: "status", Value: entity.StatusConfirmed},
		{Key: "date_time", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: 1}})

	cursor, err := collection.Find(m.ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find appointments: %w", err)
	}
	defer cursor.Close(m.ctx)

	var appts []entity.Appointment
	if err = cursor.All(m.ctx, &appts); err != nil {
		return nil, fmt.Errorf("mongodb decode appointments: %w", err)
	}

	return appts, nil
}

// ListAppointments returns every appointment, newest slot first.
func (m *MongoDB) ListAppointments() ([]entity.Appointment, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: -1}})
	cursor, err := collection.Find(m.ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find appointments: %w", err)
	}
	defer cursor.Close(m.ctx)

	var appts []entity.Appointment
	if err = cursor.All(m.ctx, &appts); err != nil {
		return nil, fmt.Errorf("mongodb decode appointments: %w", err)
	}

	return appts, nil
}

// CountAppointmentsOn counts appointments created with the given date prefix
// in their reference ID, used for sequence numbering.
func (m *MongoDB) CountAppointmentsOn(datePrefix string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(appointmentsCollection)
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$regex", Value: "^" + datePrefix}}}}

	count, err := collection.CountDocuments(m.ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongodb count appointments: %w", err)
	}

	return count, nil
}
