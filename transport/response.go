package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	"github.com/muhammadheryan/car-traders/utils/errors"
	"github.com/muhammadheryan/car-traders/utils/logger"
	"go.uber.org/zap"
)

// View is the document every page renders to.
type View struct {
	View     string            `json:"view"`
	Identity *model.Identity   `json:"identity"`
	Notices  []model.Notice    `json:"notices"`
	Data     any               `json:"data"`
	Errors   map[string]string `json:"errors"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// render writes a view. Pending notices are shown now, so the flash cookie
// is cleared.
func (s *RestHandler) render(w http.ResponseWriter, req *Request, status int, view string, data any, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	s.writeFlash(w, req, nil)
	writeJSON(w, status, View{
		View:     view,
		Identity: req.Identity,
		Notices:  req.Notices(),
		Data:     data,
		Errors:   fieldErrors,
	})
}

// redirect answers 303 and carries every notice not yet shown to the next
// request.
func (s *RestHandler) redirect(w http.ResponseWriter, req *Request, location string) {
	s.writeFlash(w, req, req.Notices())
	http.Redirect(w, req.Request, location, http.StatusSeeOther)
}

// fail maps an application error to a response. Ownership denials and
// missing sessions become redirects with a danger notice. Error documents
// drop any pending notices.
func (s *RestHandler) fail(w http.ResponseWriter, req *Request, err error) {
	var ce errors.CustomError
	if !stderrors.As(err, &ce) {
		logger.Error("[Transport] unexpected error", zap.String("path", req.URL.Path), zap.String("error", err.Error()))
		s.writeFlash(w, req, nil)
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	switch ce.Type() {
	case constant.ErrUnauthorizedView, constant.ErrUnauthorizedAction:
		req.Flash(constant.NoticeDanger, ce.Error())
		s.redirect(w, req, "/")
	case constant.ErrUnauthorize:
		req.Flash(constant.NoticeDanger, ce.Error())
		s.redirect(w, req, "/login")
	default:
		s.writeFlash(w, req, nil)
		writeError(w, ce)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var ce errors.CustomError
	if !stderrors.As(err, &ce) {
		ce = errors.SetCustomError(constant.ErrInternal)
	}
	writeJSON(w, ce.ErrorHTTPCode(), errorResponse{
		Code:    ce.ErrorCode(),
		Message: ce.Error(),
	})
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[Transport] encode response", zap.String("error", err.Error()))
	}
}
