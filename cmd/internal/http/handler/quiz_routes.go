package handler

import (
	"context"
	"net/http"

	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type QuizService interface {
	GenerateQuiz(ctx context.Context, req *contract.QuizRequest) (*contract.QuizResponse, apierror.ErrorResponse)
	Motivation(ctx context.Context) *contract.MotivationResponse
	Catalog() *contract.CatalogResponse
}

type DefaultQuizRoute struct {
	QuizService QuizService
}

func NewQuizDefault(quizService QuizService) *DefaultQuizRoute {
	return &DefaultQuizRoute{QuizService: quizService}
}

func (q *DefaultQuizRoute) CreateQuiz(c echo.Context) error {
	var req contract.QuizRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := q.QuizService.GenerateQuiz(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (q *DefaultQuizRoute) GetMotivation(c echo.Context) error {
	return c.JSON(http.StatusOK, q.QuizService.Motivation(c.Request().Context()))
}

func (q *DefaultQuizRoute) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, q.QuizService.Catalog())
}
