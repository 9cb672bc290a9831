package service

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/domain/entity"
	"noteshare/cmd/internal/infrastructure/storage"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	minSemester = 1
	maxSemester = 8
)

type NoteRepository interface {
	Create(note *entity.Note) error
	Exists(id int64) (bool, error)
	FindStatsByID(id int64) (*entity.NoteStats, error)
	FindStats(q *entity.NoteQuery) ([]*entity.NoteStats, error)
	IncrementDownloads(id int64) (*entity.Note, error)
}

type SocialRepository interface {
	UpsertRating(rating *entity.Rating) error
	ToggleLike(userID, noteID int64) (bool, error)
	CreateComment(comment *entity.Comment) error
	FindComments(noteID int64) ([]*entity.CommentView, error)
}

// FileDownload is a stored file ready to be streamed. Body must be closed.
type FileDownload struct {
	Name        string
	ContentType string
	Body        io.ReadCloser
}

type DefaultNoteService struct {
	NoteRepo   NoteRepository
	SocialRepo SocialRepository
	Files      storage.FileStore
	Validate   *validator.Validate

	// MaxFileSize rejects larger uploads when positive.
	MaxFileSize int64
}

func NewNoteService(
	noteRepo NoteRepository,
	socialRepo SocialRepository,
	files storage.FileStore,
	validate *validator.Validate,
	maxFileSize int64,
) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo:    noteRepo,
		SocialRepo:  socialRepo,
		Files:       files,
		Validate:    validate,
		MaxFileSize: maxFileSize,
	}
}

func (n *DefaultNoteService) ListNotes(req *contract.NoteListRequest) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	semester, apierr := parseSemester(req.Semester)
	if apierr != nil {
		return nil, apierr
	}

	notes, err := n.NoteRepo.FindStats(&entity.NoteQuery{
		Search:   req.Search,
		Course:   req.Course,
		Subject:  req.Subject,
		Semester: semester,
		Sort:     entity.ParseNoteSort(req.Sort),
	})
	if err != nil {
		log.Errorf("failed to list notes: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponses(notes), nil
}

func (n *DefaultNoteService) GetNote(noteID int64) (*contract.NoteDetailResponse, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindStatsByID(noteID)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}

	comments, err := n.SocialRepo.FindComments(noteID)
	if err != nil {
		log.Errorf("failed to fetch comments of note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	resp := &contract.NoteDetailResponse{
		NoteResponse: toNoteResponse(note),
		Comments:     make([]*contract.CommentResponse, len(comments)),
	}
	for i, c := range comments {
		resp.Comments[i] = toCommentResponse(c)
	}
	return resp, nil
}

func (n *DefaultNoteService) CreateNote(
	ctx context.Context,
	actor *utils.TokenData,
	req *contract.CreateNoteRequest,
	fileHeader *multipart.FileHeader,
) (*contract.CreatedResponse, apierror.ErrorResponse) {
	if fileHeader == nil {
		return nil, apierror.NoFileProvidedError
	}

	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	semester, apierr := parseSemester(req.Semester)
	if apierr != nil {
		return nil, apierr
	}

	if n.MaxFileSize > 0 && fileHeader.Size > n.MaxFileSize {
		return nil, apierror.NewFileTooLargeError(n.MaxFileSize)
	}

	fileRef, fileType, apierr := n.storeUpload(ctx, fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	note := &entity.Note{
		UserID:      actor.UserID,
		Course:      req.Course,
		Title:       req.Title,
		Subject:     req.Subject,
		Semester:    semester,
		Description: description,
		FilePath:    fileRef,
		FileType:    fileType,
		CreatedAt:   utils.NowUTC(),
	}

	if err := n.NoteRepo.Create(note); err != nil {
		log.Errorf("failed to create note (file %s kept without a row): %v", fileRef, err)
		return nil, apierror.InternalServerError
	}

	log.Infof("user %d uploaded note %d (%s)", actor.UserID, note.ID, fileRef)
	return &contract.CreatedResponse{ID: note.ID}, nil
}

// RateNote replaces any previous rating of the same user on the note.
func (n *DefaultNoteService) RateNote(actor *utils.TokenData, noteID int64, req *contract.RateRequest) apierror.ErrorResponse {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	if apierr := n.ensureNoteExists(noteID); apierr != nil {
		return apierr
	}

	err := n.SocialRepo.UpsertRating(&entity.Rating{
		UserID: actor.UserID,
		NoteID: noteID,
		Score:  req.Rating,
	})
	if err != nil {
		log.Errorf("failed to rate note %d: %v", noteID, err)
		return apierror.InternalServerError
	}
	return nil
}

// ToggleLike likes the note, or removes the like when there already is one.
func (n *DefaultNoteService) ToggleLike(actor *utils.TokenData, noteID int64) (*contract.LikeResponse, apierror.ErrorResponse) {
	if apierr := n.ensureNoteExists(noteID); apierr != nil {
		return nil, apierr
	}

	liked, err := n.SocialRepo.ToggleLike(actor.UserID, noteID)
	if err != nil {
		log.Errorf("failed to toggle like on note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}
	return &contract.LikeResponse{Liked: liked}, nil
}

func (n *DefaultNoteService) CommentNote(actor *utils.TokenData, noteID int64, req *contract.CommentRequest) (*contract.CreatedResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := n.ensureNoteExists(noteID); apierr != nil {
		return nil, apierr
	}

	comment := &entity.Comment{
		UserID:    actor.UserID,
		NoteID:    noteID,
		Content:   req.Content,
		CreatedAt: utils.NowUTC(),
	}
	if err := n.SocialRepo.CreateComment(comment); err != nil {
		log.Errorf("failed to comment on note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}
	return &contract.CreatedResponse{ID: comment.ID}, nil
}

// DownloadNote counts the download and opens the stored file. The download
// name is the note title with the stored file's extension.
func (n *DefaultNoteService) DownloadNote(ctx context.Context, noteID int64) (*FileDownload, apierror.ErrorResponse) {
	note, err := n.NoteRepo.IncrementDownloads(noteID)
	if err != nil {
		log.Errorf("failed to count download of note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}

	body, apierr := n.openFile(ctx, note.FilePath)
	if apierr != nil {
		return nil, apierr
	}

	return &FileDownload{
		Name:        note.Title + utils.FileExt(note.FilePath),
		ContentType: note.FileType,
		Body:        body,
	}, nil
}

// OpenUpload streams a stored file by its generated name, without counting
// it as a download.
func (n *DefaultNoteService) OpenUpload(ctx context.Context, fileRef string) (*FileDownload, apierror.ErrorResponse) {
	body, apierr := n.openFile(ctx, fileRef)
	if apierr != nil {
		return nil, apierr
	}

	contentType := mime.TypeByExtension(utils.FileExt(fileRef))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &FileDownload{Name: fileRef, ContentType: contentType, Body: body}, nil
}

func (n *DefaultNoteService) ensureNoteExists(noteID int64) apierror.ErrorResponse {
	exists, err := n.NoteRepo.Exists(noteID)
	if err != nil {
		log.Errorf("failed to check note %d: %v", noteID, err)
		return apierror.InternalServerError
	}

	if !exists {
		return apierror.NoteNotFoundError
	}
	return nil
}

// storeUpload saves the file under a generated name and resolves its media
// type, sniffing the content when the client did not declare one.
func (n *DefaultNoteService) storeUpload(ctx context.Context, fileHeader *multipart.FileHeader) (string, string, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open uploaded file: %v", err)
		return "", "", apierror.InternalServerError
	}
	defer file.Close()

	fileType, err := storage.MediaType(file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Errorf("failed to detect media type: %v", err)
		return "", "", apierror.InternalServerError
	}

	fileRef := storage.NewObjectName(utils.FileExt(fileHeader.Filename))
	if err = n.Files.Save(ctx, fileRef, file, fileType); err != nil {
		log.Errorf("failed to store file %s: %v", fileRef, err)
		return "", "", apierror.InternalServerError
	}
	return fileRef, fileType, nil
}

func (n *DefaultNoteService) openFile(ctx context.Context, fileRef string) (io.ReadCloser, apierror.ErrorResponse) {
	body, err := n.Files.Open(ctx, fileRef)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apierror.FileNotFoundError
	}

	if err != nil {
		log.Errorf("failed to open stored file %s: %v", fileRef, err)
		return nil, apierror.InternalServerError
	}
	return body, nil
}

// parseSemester accepts an empty value as "no semester".
func parseSemester(raw string) (*int, apierror.ErrorResponse) {
	if raw == "" {
		return nil, nil
	}

	semester, err := strconv.Atoi(raw)
	if err != nil || semester < minSemester || semester > maxSemester {
		apierr := apierror.NewStructured(http.StatusBadRequest)
		apierr.Add("semester", "Value must be between 1 and 8")
		return nil, apierr
	}
	return &semester, nil
}

func toNoteResponses(notes []*entity.NoteStats) []*contract.NoteResponse {
	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp
}

func toNoteResponse(note *entity.NoteStats) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:          note.ID,
		UserID:      note.UserID,
		Course:      note.Course,
		Title:       note.Title,
		Subject:     note.Subject,
		Semester:    note.Semester,
		Description: note.Description,
		FilePath:    note.FilePath,
		FileType:    note.FileType,
		Downloads:   note.Downloads,
		CreatedAt:   utils.FormatEpoch(note.CreatedAt),
		AuthorName:  note.AuthorName,
		AvgRating:   note.AvgRating,
		RatingCount: note.RatingCount,
		LikeCount:   note.LikeCount,
	}
}

func toCommentResponse(c *entity.CommentView) *contract.CommentResponse {
	return &contract.CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		NoteID:    c.NoteID,
		Content:   c.Content,
		CreatedAt: utils.FormatEpoch(c.CreatedAt),
		UserName:  c.UserName,
	}
}
