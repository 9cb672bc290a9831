package service

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"

	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/infrastructure/gemini"
	"noteshare/cmd/internal/utils/apierror"
	"noteshare/cmd/internal/utils/validators"
)

type fakeGenerator struct {
	questions []gemini.Question
	quote     string
	err       error
}

func (f *fakeGenerator) GenerateQuiz(_ context.Context, _ string, _ int) ([]gemini.Question, error) {
	return f.questions, f.err
}

func (f *fakeGenerator) Motivation(_ context.Context) (string, error) {
	return f.quote, f.err
}

func validQuestion(text string) gemini.Question {
	return gemini.Question{Question: text, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Explanation: "because"}
}

func TestGenerateQuiz(t *testing.T) {
	gen := &fakeGenerator{questions: []gemini.Question{
		validQuestion("q1"),
		{Question: "bad index", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 4},
		{Question: "few options", Options: []string{"a"}},
		validQuestion("q2"),
	}}
	svc := NewQuizService(gen, validators.New())

	resp, apierr := svc.GenerateQuiz(context.Background(), &contract.QuizRequest{Subject: " Physics "})
	if apierr != nil {
		t.Fatalf("generate: %+v", apierr)
	}
	if resp.Subject != "Physics" || len(resp.Questions) != 2 || resp.Questions[1].Question != "q2" {
		t.Fatalf("unexpected quiz: %+v", resp)
	}
}

func TestGenerateQuizFailures(t *testing.T) {
	ctx := context.Background()

	svc := NewQuizService(&fakeGenerator{}, validators.New())
	if _, apierr := svc.GenerateQuiz(ctx, &contract.QuizRequest{}); apierr == nil || apierr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing subject, got %+v", apierr)
	}

	svc = NewQuizService(&fakeGenerator{err: errors.New("quota")}, validators.New())
	if _, apierr := svc.GenerateQuiz(ctx, &contract.QuizRequest{Subject: "Physics"}); apierr != apierror.QuizUnavailableError {
		t.Fatalf("expected upstream error, got %+v", apierr)
	}

	svc = NewQuizService(nil, validators.New())
	if _, apierr := svc.GenerateQuiz(ctx, &contract.QuizRequest{Subject: "Physics"}); apierr != apierror.QuizUnavailableError {
		t.Fatalf("expected upstream error without backend, got %+v", apierr)
	}
}

func TestMotivationFallsBack(t *testing.T) {
	ctx := context.Background()

	if got := NewQuizService(&fakeGenerator{quote: "Keep going."}, validators.New()).Motivation(ctx); got.Quote != "Keep going." {
		t.Fatalf("unexpected quote %q", got.Quote)
	}
	if got := NewQuizService(&fakeGenerator{err: errors.New("down")}, validators.New()).Motivation(ctx); got.Quote != FallbackQuote {
		t.Fatalf("expected fallback, got %q", got.Quote)
	}
	if got := NewQuizService(nil, validators.New()).Motivation(ctx); got.Quote != FallbackQuote {
		t.Fatalf("expected fallback without backend, got %q", got.Quote)
	}
}

func TestCatalog(t *testing.T) {
	catalog := NewQuizService(nil, validators.New()).Catalog()

	if len(catalog.Courses) != 4 || catalog.Courses[3].Name != "BE/BTech" {
		t.Fatalf("unexpected courses: %+v", catalog.Courses)
	}
	if !slices.IsSorted(catalog.Subjects) {
		t.Fatalf("subjects not sorted")
	}
	count := 0
	for _, s := range catalog.Subjects {
		if s == "Mathematics" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected Mathematics once, got %d", count)
	}
	if !slices.Equal(catalog.Semesters, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("unexpected semesters: %v", catalog.Semesters)
	}
}
