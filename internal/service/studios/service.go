package studios

import (
	"context"
	"errors"
	"fmt"

	studioRepo "github.com/m04kA/PSB-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/PSB-BookingService/internal/service/studios/models"
)

// Service сервис для работы с расписанием студий
type Service struct {
	studioRepo StudioRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса студий
func NewService(studioRepo StudioRepository, logger Logger) *Service {
	return &Service{
		studioRepo: studioRepo,
		logger:     logger,
	}
}

// GetOperatingHours получает недельное расписание студии
// Публичный метод - доступен всем
func (s *Service) GetOperatingHours(ctx context.Context, studioID int64) (*models.OperatingHoursResponse, error) {
	s.logger.Info("GetOperatingHours: fetching hours for studio=%d", studioID)

	studio, err := s.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			s.logger.Warn("GetOperatingHours: studio id=%d not found", studioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("GetOperatingHours: repository error for studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: GetOperatingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOperatingHours: successfully fetched hours for studio=%d", studioID)
	return models.FromDomainHours(studio.ID, studio.OperatingHours), nil
}

// UpdateOperatingHours заменяет недельное расписание студии целиком
// Доступно только владельцу студии
func (s *Service) UpdateOperatingHours(ctx context.Context, studioID int64, req *models.UpdateOperatingHoursRequest) (*models.OperatingHoursResponse, error) {
	s.logger.Info("UpdateOperatingHours: updating hours for studio=%d by user=%d", studioID, req.UserID)

	studio, err := s.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			s.logger.Warn("UpdateOperatingHours: studio id=%d not found", studioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("UpdateOperatingHours: repository error for studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: UpdateOperatingHours - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только владелец студии)
	if !studio.IsOwnedBy(req.UserID) {
		s.logger.Warn("UpdateOperatingHours: user=%d is not the owner of studio=%d", req.UserID, studioID)
		return nil, ErrAccessDenied
	}

	hours := req.ToDomainHours()
	if err := hours.Validate(); err != nil {
		s.logger.Warn("UpdateOperatingHours: invalid hours for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.studioRepo.UpdateOperatingHours(ctx, studioID, hours); err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		s.logger.Error("UpdateOperatingHours: repository error for studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: UpdateOperatingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOperatingHours: successfully updated hours for studio=%d", studioID)
	return models.FromDomainHours(studioID, hours), nil
}
