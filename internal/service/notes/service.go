package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	notesRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/notes"
)

// Service заметки администратора о клиентах, ключ - email клиента
type Service struct {
	repo   NoteRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса заметок
func NewService(repo NoteRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List заметки клиента, новые первыми
func (s *Service) List(ctx context.Context, email string) ([]*domain.CustomerNote, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Create добавляет заметку
func (s *Service) Create(ctx context.Context, email, text, createdBy string) (*domain.CustomerNote, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	text, err = validateText(text)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(createdBy) == "" {
		return nil, fmt.Errorf("%w: createdBy is required", ErrInvalidInput)
	}

	created, err := s.repo.Create(ctx, &domain.CustomerNote{
		CustomerEmail: email,
		Note:          text,
		CreatedBy:     createdBy,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: note id=%d added by %s", created.ID, createdBy)
	return created, nil
}

// Update меняет текст заметки
func (s *Service) Update(ctx context.Context, id int64, text string) (*domain.CustomerNote, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateText(ctx, id, text)
	if err != nil {
		if errors.Is(err, notesRepo.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		s.logger.Error("Update: repository error for note id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	return updated, nil
}

// Delete удаляет заметку
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, notesRepo.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		s.logger.Error("Delete: repository error for note id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: note id=%d deleted", id)
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	return email, nil
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: note is empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > domain.MaxNoteLength {
		return "", fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}
	return text, nil
}
