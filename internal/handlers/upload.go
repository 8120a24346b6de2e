package handlers

import (
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/media"
	"github.com/gofiber/fiber/v2"
)

// formImage opens the multipart file in field. It returns a nil file when the
// request carries none; the returned close func is always safe to call.
func formImage(c *fiber.Ctx, field string) (*media.File, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, nil
	}
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, noop, nil
	}

	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}

	return &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { f.Close() }, nil
}

// formValue reports a multipart field only when the client sent it.
func formValue(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}
