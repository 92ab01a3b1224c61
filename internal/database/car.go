package repository

import (
	"DriveLine/entity"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCarByID returns nil without error when the car does not exist.
func (m *MongoDB) GetCarByID(id string) (*entity.CarModel, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(carsCollection)
	filter := bson.D{{Key: "_id", Value: id}}

	var car entity.CarModel
	err = collection.FindOne(m.ctx, filter).Decode(&car)
	if err != nil {
		return nil, m.findError(err)
	}

	return &car, nil
}

func (m *MongoDB) GetAllCars() ([]entity.CarModel, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(carsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cursor, err := collection.Find(m.ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find cars: %w", err)
	}
	defer cursor.Close(m.ctx)

	var cars []entity.CarModel
	if err = cursor.All(m.ctx, &cars); err != nil {
		return nil, fmt.Errorf("mongodb decode cars: %w", err)
	}

	return cars, nil
}

func (m *MongoDB) InsertCar(car entity.CarModel) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(carsCollection)

	_, err = collection.InsertOne(m.ctx, car)
	if err != nil {
		return fmt.Errorf("mongodb insert car: %w", err)
	}

	return nil
}

func (m *MongoDB) UpdateCar(car entity.CarModel) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(carsCollection)
	filter := bson.D{{Key: "_id", Value: car.ID}}

	result, err := collection.ReplaceOne(m.ctx, filter, car)
	if err != nil {
		return fmt.Errorf("mongodb update car: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("car %s not found", car.ID)
	}

	return nil
}

func (m *MongoDB) DeleteCar(id string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(carsCollection)
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := collection.DeleteOne(m.ctx, filter)
	if err != nil {
		return fmt.Errorf("mongodb delete car: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("car %s not found", id)
	}

	return nil
}

// SeedCars inserts the given models only when the collection is empty.
func (m *MongoDB) SeedCars(cars []entity.CarModel) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(carsCollection)

	count, err := collection.CountDocuments(m.ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("mongodb count cars: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, len(cars))
	for i, car := range cars {
		docs[i] = car
	}

	_, err = collection.InsertMany(m.ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mongodb seed cars: %w", err)
	}

	return nil
}
