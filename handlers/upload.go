package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"groupcal/models"

	"github.com/gin-gonic/gin"
)

const multipartMemory = 8 << 20

var (
	errUploadTooLarge = errors.New("アップロードされたファイルのサイズが上限を超えています。")
	errInvalidTarget  = errors.New("target_year と target_month は数値で指定してください。")
)

// parseUpload reads a schedule form, multipart or urlencoded, capped at maxBytes.
// It returns the HTTP status to answer with on failure.
func parseUpload(c *gin.Context, maxBytes int64) (*multipart.Form, int, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	err := c.Request.ParseMultipartForm(multipartMemory)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return c.Request.MultipartForm, http.StatusOK, nil
	case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
		return nil, http.StatusRequestEntityTooLarge, errUploadTooLarge
	case errors.Is(err, http.ErrNotMultipart):
		return nil, http.StatusOK, nil
	default:
		return nil, http.StatusBadRequest, fmt.Errorf("フォームを読み取れませんでした: %v", err)
	}
}

// readImages loads every non-empty "images" part into memory.
func readImages(form *multipart.Form) ([]models.ImageInput, error) {
	if form == nil {
		return nil, nil
	}
	var images []models.ImageInput
	for _, fh := range form.File["images"] {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		data, err := readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("ファイル '%s' を読み取れませんでした: %v", fh.Filename, err)
		}
		// The declared type is authoritative; sniff only when the part has none.
		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = http.DetectContentType(data)
		}
		images = append(images, models.ImageInput{Filename: fh.Filename, MIMEType: mime, Data: data})
	}
	return images, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// optionalInt parses s, returning def when s is blank.
func optionalInt(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// targetMonth reads target_year and target_month, defaulting to the current month.
func targetMonth(c *gin.Context, now time.Time) (int, int, error) {
	year, err := optionalInt(c.PostForm("target_year"), now.Year())
	if err != nil {
		return 0, 0, errInvalidTarget
	}
	month, err := optionalInt(c.PostForm("target_month"), int(now.Month()))
	if err != nil {
		return 0, 0, errInvalidTarget
	}
	return year, month, nil
}
