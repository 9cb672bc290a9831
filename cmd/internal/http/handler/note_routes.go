package handler

import (
	"context"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/service"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	ListNotes(req *contract.NoteListRequest) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNote(noteID int64) (*contract.NoteDetailResponse, apierror.ErrorResponse)
	CreateNote(ctx context.Context, actor *utils.TokenData, req *contract.CreateNoteRequest, fileHeader *multipart.FileHeader) (*contract.CreatedResponse, apierror.ErrorResponse)
	RateNote(actor *utils.TokenData, noteID int64, req *contract.RateRequest) apierror.ErrorResponse
	ToggleLike(actor *utils.TokenData, noteID int64) (*contract.LikeResponse, apierror.ErrorResponse)
	CommentNote(actor *utils.TokenData, noteID int64, req *contract.CommentRequest) (*contract.CreatedResponse, apierror.ErrorResponse)
	DownloadNote(ctx context.Context, noteID int64) (*service.FileDownload, apierror.ErrorResponse)
	OpenUpload(ctx context.Context, fileRef string) (*service.FileDownload, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	var req contract.NoteListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	notes, apierr := n.NoteService.ListNotes(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, notes)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	note, apierr := n.NoteService.GetNote(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	actor, cerr := utils.GetTokenFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	// A missing file part is reported by the service.
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader = nil
	}

	resp, apierr := n.NoteService.CreateNote(c.Request().Context(), actor, &req, fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (n *DefaultNoteRoute) RateNote(c echo.Context) error {
	actor, cerr := utils.GetTokenFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.RateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := n.NoteService.RateNote(actor, id, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.SuccessResponse{Success: true})
}

func (n *DefaultNoteRoute) LikeNote(c echo.Context) error {
	actor, cerr := utils.GetTokenFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	resp, apierr := n.NoteService.ToggleLike(actor, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (n *DefaultNoteRoute) CommentNote(c echo.Context) error {
	actor, cerr := utils.GetTokenFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := n.NoteService.CommentNote(actor, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (n *DefaultNoteRoute) DownloadNote(c echo.Context) error {
	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	file, apierr := n.NoteService.DownloadNote(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return streamFile(c, file, "attachment")
}

// ServeUpload serves a stored file by its generated name.
func (n *DefaultNoteRoute) ServeUpload(c echo.Context) error {
	file, apierr := n.NoteService.OpenUpload(c.Request().Context(), c.Param("ref"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return streamFile(c, file, "inline")
}

func streamFile(c echo.Context, file *service.FileDownload, disposition string) error {
	defer file.Body.Close()

	header := mime.FormatMediaType(disposition, map[string]string{"filename": file.Name})
	c.Response().Header().Set(echo.HeaderContentDisposition, header)
	return c.Stream(http.StatusOK, file.ContentType, file.Body)
}

func noteIDParam(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int")
	}
	return id, nil
}
