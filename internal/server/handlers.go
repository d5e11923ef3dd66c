package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/utils"
)

// DocumentPayload is a document sent by a client
type DocumentPayload struct {
	Name string `json:"name" validate:"max=1024"`
	Text string `json:"text"`
}

// SpanPayload is a selection inside the document, in bytes
type SpanPayload struct {
	Start  int `json:"start" validate:"min=0"`
	Length int `json:"length" validate:"min=0"`
}

// RefactoringRequest asks for the action at a selection and its result
type RefactoringRequest struct {
	Document DocumentPayload `json:"document"`
	Span     SpanPayload     `json:"span"`
}

// DiagnosticPayload explains why the constructor could not be regenerated
type DiagnosticPayload struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Members []string `json:"members,omitempty"`
}

// RefactoringResponse is the outcome of a refactoring request
type RefactoringResponse struct {
	Available  bool               `json:"available"`
	Title      string             `json:"title,omitempty"`
	Changed    bool               `json:"changed"`
	Text       string             `json:"text"`
	Diagnostic *DiagnosticPayload `json:"diagnostic,omitempty"`
}

// ErrorResponse is the body of a failed request
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
	Hints   []string               `json:"hints,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRefactoring(c echo.Context) error {
	start := time.Now()
	outcome := OutcomeError
	defer func() { s.metrics.Observe(outcome, time.Since(start)) }()

	req, err := s.decodeRequest(c)
	if err != nil {
		outcome = OutcomeInvalid
		return s.fail(c, err)
	}

	doc := models.NewDocument(req.Document.Name, req.Document.Text)
	span := models.NewSpan(req.Span.Start, req.Span.Length)

	ctx := c.Request().Context()
	action, err := s.refactorer.ProposeRefactoring(ctx, doc, span)
	if err != nil {
		return s.fail(c, err)
	}
	if action == nil {
		outcome = OutcomeUnavailable
		return c.JSON(http.StatusOK, RefactoringResponse{Text: doc.Text})
	}

	out, result, err := action.Run(ctx)
	if err != nil {
		return s.fail(c, err)
	}

	resp := RefactoringResponse{
		Available: true,
		Title:     action.Title,
		Changed:   out.Text != doc.Text,
		Text:      out.Text,
	}

	switch {
	case result.Diagnostic != nil:
		outcome = OutcomeDiagnostic
		message, err := s.refactorer.Message(result.Diagnostic)
		if err != nil {
			return s.fail(c, err)
		}
		resp.Diagnostic = &DiagnosticPayload{
			Code:    result.Diagnostic.ErrorCode().String(),
			Message: message,
			Members: result.Diagnostic.Offenders,
		}
	case result.Changed():
		outcome = OutcomeRegenerated
	default:
		outcome = OutcomeUnchanged
	}

	s.logger.Debug("refactoring",
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.String("document", doc.Name),
		zap.String("class", action.Target().Class.Name),
		zap.String("outcome", outcome),
	)
	return c.JSON(http.StatusOK, resp)
}

// decodeRequest reads a size-bounded JSON body and validates it
func (s *Server) decodeRequest(c echo.Context) (*RefactoringRequest, error) {
	r := c.Request()
	r.Body = http.MaxBytesReader(c.Response(), r.Body, s.cfg.MaxDocumentBytes)

	var req RefactoringRequest
	if err := c.Bind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body exceeds the configured limit")
		}
		if errors.Is(err, io.EOF) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "request body is empty")
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, errors.Wrap(errors.ValidationErrorCode, "invalid request", err)
	}
	if req.Span.Start+req.Span.Length > len(req.Document.Text) {
		return nil, errors.ValidationError("span", "a selection inside the document", "a selection past its end").
			WithContext("document_length", len(req.Document.Text))
	}
	return &req, nil
}

// fail writes an error body with a status derived from the error code
func (s *Server) fail(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, ErrorResponse{Code: http.StatusText(httpErr.Code), Message: fmt.Sprint(httpErr.Message)})
	}

	body := ErrorResponse{Code: errors.UnknownErrorCode.String(), Message: err.Error()}
	status := http.StatusInternalServerError

	var ctorErr errors.CtorError
	if errors.As(err, &ctorErr) {
		body.Code = ctorErr.ErrorCode().String()
		body.Context = ctorErr.Context()
		body.Hints = ctorErr.Suggestions()
		switch ctorErr.ErrorCode() {
		case errors.ValidationErrorCode:
			status = http.StatusBadRequest
		case errors.SyntaxErrorCode:
			status = http.StatusUnprocessableEntity
		}
	} else if ctxErr := c.Request().Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("refactoring failed", zap.Error(err))
	}
	return c.JSON(status, body)
}
