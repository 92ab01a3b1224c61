package chat

import "DriveLine/entity"

type Core interface {
	ActiveChats() ([]entity.ChatSummary, error)
	ChatHistory(userID string, limit int) ([]entity.ChatTurn, error)
}
