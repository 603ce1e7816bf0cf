package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
)

const (
	maxMultipartMemory = 8 << 20
	maxUploadBytes     = 10 << 20
	imageField         = "image"
)

// stagedImage is an uploaded file copied to local disk before it is pushed
// to object storage
type stagedImage struct {
	path     string
	filename string
	logger   zerolog.Logger
}

// stageImage copies the multipart image field to a temp file. It returns
// nil when the request carries no image.
func stageImage(r *http.Request, logger zerolog.Logger) (*stagedImage, error) {
	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewBadRequestError("invalid image upload")
	}
	defer file.Close()

	if contentType := header.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, errs.NewUnsupportedMediaTypeError(contentType)
	}

	tmp, err := os.CreateTemp("", "portfolio-upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to stage upload", err)
	}

	staged := &stagedImage{path: tmp.Name(), filename: header.Filename, logger: logger}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		staged.remove()
		return nil, errs.NewInternalErrorWithCause("failed to stage upload", err)
	}
	if err := tmp.Close(); err != nil {
		staged.remove()
		return nil, errs.NewInternalErrorWithCause("failed to stage upload", err)
	}
	return staged, nil
}

// upload pushes the staged file through uploader and returns its public URL
func (s *stagedImage) upload(ctx context.Context, uploader services.ImageUploader) (string, error) {
	if uploader == nil {
		return "", errs.NewServiceUnavailableError("Image storage")
	}

	f, err := os.Open(s.path)
	if err != nil {
		return "", errs.NewUploadError(err)
	}
	defer f.Close()

	url, err := uploader.Upload(ctx, s.filename, f)
	if err != nil {
		if errs.IsUploadError(err) {
			return "", err
		}
		return "", errs.NewUploadError(err)
	}
	return url, nil
}

// remove deletes the temp file. Failures are only logged.
func (s *stagedImage) remove() {
	if s == nil {
		return
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("failed to remove staged upload")
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipartProject reads project fields from a multipart form
func parseMultipartProject(w http.ResponseWriter, r *http.Request) (ProjectRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ProjectRequest{}, errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return ProjectRequest{}, errs.NewBadRequestError("malformed multipart form")
	}

	form := r.MultipartForm
	req := ProjectRequest{
		Title:        formValue(form, "title"),
		Description:  formValue(form, "description"),
		Technologies: formList(form, "technologies"),
		GithubURL:    formValue(form, "githubUrl"),
		LiveURL:      formValue(form, "liveUrl"),
		Category:     formValue(form, "category"),
	}
	return req, nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// formList accepts a repeated field, a bracketed field or a single comma separated value
func formList(form *multipart.Form, key string) []string {
	values := form.Value[key]
	if len(values) == 0 {
		values = form.Value[key+"[]"]
	}

	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
