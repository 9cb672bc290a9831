package handler

import (
	"net/http"

	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type LeaderboardService interface {
	RecordAttempt(actor *utils.TokenData, req *contract.LeaderboardRequest) apierror.ErrorResponse
	ListTop(subject string) ([]*contract.LeaderboardEntryResponse, apierror.ErrorResponse)
}

type DefaultLeaderboardRoute struct {
	LeaderboardService LeaderboardService
}

func NewLeaderboardDefault(leaderboardService LeaderboardService) *DefaultLeaderboardRoute {
	return &DefaultLeaderboardRoute{LeaderboardService: leaderboardService}
}

func (l *DefaultLeaderboardRoute) GetLeaderboard(c echo.Context) error {
	rows, apierr := l.LeaderboardService.ListTop(c.QueryParam("subject"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, rows)
}

func (l *DefaultLeaderboardRoute) CreateEntry(c echo.Context) error {
	actor, cerr := utils.GetTokenFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.LeaderboardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := l.LeaderboardService.RecordAttempt(actor, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.SuccessResponse{Success: true})
}
