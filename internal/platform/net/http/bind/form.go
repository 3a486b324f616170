package bind

import (
	"errors"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	perr "tgcheck/internal/platform/errors"
)

// DefaultFormBytes bounds url-encoded and multipart bodies
const DefaultFormBytes int64 = 1 << 20

// ParseForm fills the string fields of T tagged `form:"name"` from a url-encoded
// or multipart body, validates T, and maps failures to project errors
func ParseForm[T any](r *http.Request, maxBytes ...int64) (T, error) {
	var zero, dst T
	limit := DefaultFormBytes
	if len(maxBytes) > 0 && maxBytes[0] > 0 {
		limit = maxBytes[0]
	}
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(limit)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return zero, formError(err)
	}

	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.InvalidArgf("form target must be a struct")
	}
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		name := f.Tag.Get("form")
		if name == "" || name == "-" || f.Type.Kind() != reflect.String || !f.IsExported() {
			continue
		}
		rv.Field(i).SetString(r.FormValue(name))
	}

	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// File returns the uploaded file under field; the whole body is capped at maxBytes
func File(r *http.Request, field string, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultFormBytes
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	f, fh, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s is required", field), field)
		}
		return nil, nil, formError(err)
	}
	return f, fh, nil
}

func formError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return perr.Wrapf(err, perr.ErrorCodeValidation, "upload exceeds %d bytes", tooBig.Limit)
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "could not read form")
}
