package history

import (
	"DriveLine/entity"
	"DriveLine/internal/lib/sl"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	SaveChatTurn(turn entity.ChatTurn) error
	GetChatTurns(userID string, limit int) ([]entity.ChatTurn, error)
	GetActiveChats() ([]entity.ChatSummary, error)
}

const memoryRetention = 100

// Service is the per-user conversation log. Without a repository it keeps
// a bounded in-memory tail per user.
type Service struct {
	repository Repository

	mu     sync.RWMutex
	memory map[string][]entity.ChatTurn

	log *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		memory: make(map[string][]entity.ChatTurn),
		log:    logger.With(sl.Module("history-service")),
	}
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
}

func (s *Service) SaveTurn(userID, role, content string) error {
	turn := entity.ChatTurn{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if s.repository != nil {
		return s.repository.SaveChatTurn(turn)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append(s.memory[userID], turn)
	if len(turns) > memoryRetention {
		turns = turns[len(turns)-memoryRetention:]
	}
	s.memory[userID] = turns
	return nil
}

// GetRecent returns up to limit newest turns, ordered oldest first.
func (s *Service) GetRecent(userID string, limit int) ([]entity.ChatTurn, error) {
	if s.repository != nil {
		turns, err := s.repository.GetChatTurns(userID, limit)
		if err != nil {
			return nil, err
		}
		reverse(turns)
		return turns, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.memory[userID]
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]entity.ChatTurn, len(turns))
	copy(out, turns)
	return out, nil
}

// ActiveChats lists users with stored history, most recent first.
func (s *Service) ActiveChats() ([]entity.ChatSummary, error) {
	if s.repository != nil {
		return s.repository.GetActiveChats()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var summaries []entity.ChatSummary
	for userID, turns := range s.memory {
		if len(turns) == 0 {
			continue
		}
		last := turns[len(turns)-1]
		summaries = append(summaries, entity.ChatSummary{
			UserID:      userID,
			LastMessage: last.Content,
			LastTime:    last.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastTime.After(summaries[j].LastTime)
	})
	return summaries, nil
}

func reverse(turns []entity.ChatTurn) {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
}
