package repository

import (
	"DriveLine/entity"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatHistoryRetention = 100

// SaveChatTurn inserts one conversation turn and trims the per-user tail.
func (m *MongoDB) SaveChatTurn(turn entity.ChatTurn) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatMessagesCollection)

	_, err = collection.InsertOne(m.ctx, turn)
	if err != nil {
		return fmt.Errorf("mongodb insert chat turn: %w", err)
	}

	filter := bson.D{{Key: "user_id", Value: turn.UserID}}
	count, err := collection.CountDocuments(m.ctx, filter)
	if err != nil {
		return fmt.Errorf("mongodb count chat turns: %w", err)
	}

	if count > chatHistoryRetention {
		opts := options.FindOne().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(chatHistoryRetention - 1)
		var cutoff entity.ChatTurn
		err = collection.FindOne(m.ctx, filter, opts).Decode(&cutoff)
		if err != nil {
			return fmt.Errorf("mongodb find cutoff turn: %w", err)
		}

		deleteFilter := bson.D{
			{Key: "user_id", Value: turn.UserID},
			{Key: "created_at", Value: bson.D{{Key: "$lt", Value: cutoff.CreatedAt}}},
		}
		_, err = collection.DeleteMany(m.ctx, deleteFilter)
		if err != nil {
			return fmt.Errorf("mongodb trim chat turns: %w", err)
		}
	}

	return nil
}

// GetChatTurns returns the newest turns for a user, newest first.
func (m *MongoDB) GetChatTurns(userID string, limit int) ([]entity.ChatTurn, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatMessagesCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(m.ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find chat turns: %w", err)
	}
	defer cursor.Close(m.ctx)

	var turns []entity.ChatTurn
	if err = cursor.All(m.ctx, &turns); err != nil {
		return nil, fmt.Errorf("mongodb decode chat turns: %w", err)
	}

	return turns, nil
}

// GetActiveChats returns per-user summaries with the latest message.
func (m *MongoDB) GetActiveChats() ([]entity.ChatSummary, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatMessagesCollection)

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "last_message", Value: bson.D{{Key: "$first", Value: "$content"}}},
			{Key: "last_time", Value: bson.D{{Key: "$first", Value: "$created_at"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_time", Value: -1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "user_id", Value: "$_id"},
			{Key: "last_message", Value: 1},
			{Key: "last_time", Value: 1},
		}}},
	}

	cursor, err := collection.Aggregate(m.ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongodb aggregate active chats: %w", err)
	}
	defer cursor.Close(m.ctx)

	var summaries []entity.ChatSummary
	if err = cursor.All(m.ctx, &summaries); err != nil {
		return nil, fmt.Errorf("mongodb decode chat summaries: %w", err)
	}

	return summaries, nil
}

// EnsureChatTurnIndexes creates the lookup index for chat history.
func (m *MongoDB) EnsureChatTurnIndexes() error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatMessagesCollection)

	index := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	}

	_, err = collection.Indexes().CreateOne(m.ctx, index)
	if err != nil {
		return fmt.Errorf("mongodb create chat turn index: %w", err)
	}

	return nil
}
