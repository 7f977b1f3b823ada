package transport

import (
	"net/http"

	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	utilsContext "github.com/muhammadheryan/car-traders/utils/context"
)

// Request carries the per-request identity and notices through a handler.
// Notices added with Flash are shown on the rendered view or carried across
// a redirect in the flash cookie.
type Request struct {
	*http.Request
	Identity *model.Identity
	Token    string

	incoming []model.Notice
	outgoing []model.Notice
}

type handlerFunc func(w http.ResponseWriter, req *Request)

func newRequest(r *http.Request) *Request {
	ctx := r.Context()
	identity, _ := utilsContext.GetIdentity(ctx)
	return &Request{
		Request:  r,
		Identity: identity,
		Token:    utilsContext.GetSessionToken(ctx),
		incoming: readFlash(r),
	}
}

func (r *Request) Flash(category constant.NoticeCategory, message string) {
	r.outgoing = append(r.outgoing, model.Notice{Category: category, Message: message})
}

// Notices returns every notice to show on a rendered view.
func (r *Request) Notices() []model.Notice {
	out := make([]model.Notice, 0, len(r.incoming)+len(r.outgoing))
	out = append(out, r.incoming...)
	return append(out, r.outgoing...)
}

func (r *Request) owns(id uint64) bool {
	return r.Identity != nil && r.Identity.ID == id
}
