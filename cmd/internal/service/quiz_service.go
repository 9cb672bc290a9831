package service

import (
	"context"
	"slices"

	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/infrastructure/gemini"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	QuizQuestionCount = 10
	quizOptionCount   = 4

	FallbackQuote = "Success is the sum of small efforts, repeated day in and day out."
)

// QuizGenerator is the generative AI backend. It may be nil when no API key
// is configured.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, subject string, count int) ([]gemini.Question, error)
	Motivation(ctx context.Context) (string, error)
}

type course struct {
	name     string
	subjects []string
}

var courses = []course{
	{name: "BCA", subjects: []string{
		"C Programming", "Digital Logic and Computer Design", "Accountancy", "Indian Constitutional Values",
		"Mathematics", "Discrete Structures", "Data Structures", "Operating Systems", "Computer Networks",
		"Software Engineering", "Database Management Systems", "Java Programming", "Python Programming",
		"Web Technologies",
	}},
	{name: "BCom", subjects: []string{
		"Financial Accounting", "Business Management", "Corporate Accounting", "Business Law", "Economics",
		"Auditing", "Cost Accounting", "Income Tax", "Marketing Management", "Banking and Insurance",
	}},
	{name: "BSc", subjects: []string{
		"Physics", "Chemistry", "Mathematics", "Botany", "Zoology", "Biotechnology", "Microbiology",
		"Electronics", "Statistics", "Environmental Science",
	}},
	{name: "BE/BTech", subjects: []string{
		"Engineering Mathematics", "Engineering Physics", "Engineering Chemistry", "Basic Electrical Engineering",
		"Programming for Problem Solving", "Engineering Graphics", "Mechanics", "Thermodynamics",
		"Analog Electronics", "Digital Signal Processing", "Microprocessors", "Control Systems", "VLSI Design",
	}},
}

type DefaultQuizService struct {
	Generator QuizGenerator
	Validate  *validator.Validate
}

func NewQuizService(generator QuizGenerator, validate *validator.Validate) *DefaultQuizService {
	return &DefaultQuizService{Generator: generator, Validate: validate}
}

// GenerateQuiz never writes state; a failed or malformed generation is
// reported as an upstream error and is not retried.
func (q *DefaultQuizService) GenerateQuiz(ctx context.Context, req *contract.QuizRequest) (*contract.QuizResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := q.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if q.Generator == nil {
		log.Warn("quiz requested but no generative AI backend is configured")
		return nil, apierror.QuizUnavailableError
	}

	questions, err := q.Generator.GenerateQuiz(ctx, req.Subject, QuizQuestionCount)
	if err != nil {
		log.Errorf("failed to generate quiz for %q: %v", req.Subject, err)
		return nil, apierror.QuizUnavailableError
	}

	resp := &contract.QuizResponse{Subject: req.Subject}
	for _, question := range questions {
		if !isWellFormed(question) {
			log.Warnf("dropping malformed quiz question for %q: %+v", req.Subject, question)
			continue
		}
		resp.Questions = append(resp.Questions, &contract.QuizQuestion{
			Question:      question.Question,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		})
	}

	if len(resp.Questions) == 0 {
		return nil, apierror.QuizUnavailableError
	}
	return resp, nil
}

// Motivation always answers; any backend failure yields FallbackQuote.
func (q *DefaultQuizService) Motivation(ctx context.Context) *contract.MotivationResponse {
	if q.Generator == nil {
		return &contract.MotivationResponse{Quote: FallbackQuote}
	}

	quote, err := q.Generator.Motivation(ctx)
	if err != nil {
		log.Warnf("falling back to static quote: %v", err)
		return &contract.MotivationResponse{Quote: FallbackQuote}
	}
	return &contract.MotivationResponse{Quote: quote}
}

func (q *DefaultQuizService) Catalog() *contract.CatalogResponse {
	resp := &contract.CatalogResponse{
		Courses:   make([]*contract.CourseResponse, len(courses)),
		Semesters: make([]int, 0, maxSemester),
	}

	for i, c := range courses {
		resp.Courses[i] = &contract.CourseResponse{Name: c.name, Subjects: slices.Clone(c.subjects)}
		resp.Subjects = append(resp.Subjects, c.subjects...)
	}
	slices.Sort(resp.Subjects)
	resp.Subjects = slices.Compact(resp.Subjects)

	for s := minSemester; s <= maxSemester; s++ {
		resp.Semesters = append(resp.Semesters, s)
	}
	return resp
}

func isWellFormed(q gemini.Question) bool {
	return q.Question != "" &&
		len(q.Options) == quizOptionCount &&
		q.CorrectAnswer >= 0 && q.CorrectAnswer < quizOptionCount
}
