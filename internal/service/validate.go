package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/storage"
)

var validate = validator.New()

var now = func() time.Time { return time.Now().UTC() }

// validateStruct runs the struct tags and folds failures into one ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
	}
	return &internal.ValidationError{Field: strings.Join(fields, ","), Message: strings.Join(msgs, "; ")}
}

type PageQuery struct {
	Skip  int `form:"skip,default=0" validate:"gte=0"`
	Limit int `form:"limit,default=50" validate:"gte=1,lte=100"`
}

func (q PageQuery) page() storage.Page {
	return storage.Page{Skip: q.Skip, Limit: q.Limit}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
