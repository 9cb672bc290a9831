package service

import (
	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/domain/entity"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// LeaderboardLimit is the most entries a listing returns.
const LeaderboardLimit = 50

type LeaderboardRepository interface {
	Create(entry *entity.LeaderboardEntry) error
	FindTop(subject string, limit int) ([]*entity.LeaderboardView, error)
}

type DefaultLeaderboardService struct {
	LeaderboardRepo LeaderboardRepository
	Validate        *validator.Validate
}

func NewLeaderboardService(repo LeaderboardRepository, validate *validator.Validate) *DefaultLeaderboardService {
	return &DefaultLeaderboardService{LeaderboardRepo: repo, Validate: validate}
}

// RecordAttempt stores one finished quiz as submitted.
func (l *DefaultLeaderboardService) RecordAttempt(actor *utils.TokenData, req *contract.LeaderboardRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := l.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	entry := &entity.LeaderboardEntry{
		UserID:    actor.UserID,
		Subject:   req.Subject,
		Score:     req.Score,
		Total:     req.Total,
		CreatedAt: utils.NowUTC(),
	}
	if err := l.LeaderboardRepo.Create(entry); err != nil {
		log.Errorf("failed to record quiz attempt of user %d: %v", actor.UserID, err)
		return apierror.InternalServerError
	}
	return nil
}

// ListTop returns the best attempts, optionally for a single subject.
func (l *DefaultLeaderboardService) ListTop(subject string) ([]*contract.LeaderboardEntryResponse, apierror.ErrorResponse) {
	rows, err := l.LeaderboardRepo.FindTop(subject, LeaderboardLimit)
	if err != nil {
		log.Errorf("failed to fetch leaderboard: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.LeaderboardEntryResponse, len(rows))
	for i, row := range rows {
		resp[i] = &contract.LeaderboardEntryResponse{
			ID:        row.ID,
			UserID:    row.UserID,
			Subject:   row.Subject,
			Score:     row.Score,
			Total:     row.Total,
			CreatedAt: utils.FormatEpoch(row.CreatedAt),
			UserName:  row.UserName,
		}
	}
	return resp, nil
}
