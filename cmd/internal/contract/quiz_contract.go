package contract

type QuizRequest struct {
	Subject string `json:"subject" validate:"required,max=120"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type QuizResponse struct {
	Subject   string          `json:"subject"`
	Questions []*QuizQuestion `json:"questions"`
}

type MotivationResponse struct {
	Quote string `json:"quote"`
}

type CourseResponse struct {
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

type CatalogResponse struct {
	Courses   []*CourseResponse `json:"courses"`
	Subjects  []string          `json:"subjects"`
	Semesters []int             `json:"semesters"`
}
