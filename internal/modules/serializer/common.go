package serializer

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger sets the logger unhandled errors are reported to.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// ListResponse is one page of entities.
type ListResponse[T any] struct {
	NumOfPages int   `json:"num_of_pages"`
	Page       int   `json:"page"`
	Total      int64 `json:"total"`
	Result     []T   `json:"result"`
}

// NewList converts a page of entities with conv.
func NewList[E, T any](p *repo.Page[E], conv func(E) T) ListResponse[T] {
	return ListResponse[T]{
		NumOfPages: p.TotalPages(),
		Page:       p.Number(),
		Total:      p.Total,
		Result:     lo.Map(p.Entries, func(e E, _ int) T { return conv(e) }),
	}
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// AppErr renders err with the status of its kind. Validation errors carry
// the offending fields in Data; causes of unhandled errors are logged and
// only shown outside release mode.
func AppErr(err error) (int, Response) {
	e := apperr.As(err)
	status := e.Kind.Status()
	if e.Kind == apperr.KindUnhandled {
		log.Error("unhandled error", zap.Error(err))
	}

	res := Err(status, e.Message, e.Err)
	if len(e.Fields) > 0 {
		res.Data = e.Fields
	}
	return status, res
}
