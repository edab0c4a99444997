package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/flightplanner/client/internal/domain"
)

// MaxAvatarSize is the largest avatar image the API accepts.
const MaxAvatarSize = 2 << 20

// avatarTypes are the accepted avatar content types.
var avatarTypes = []string{"image/png", "image/jpeg", "image/webp"}

// AvatarURL returns the URL of an employee's avatar image. No request is made.
// The URL is absolute when the client knows its origin.
func (c *Client) AvatarURL(id string) string {
	p, err := employeePath(id, "/avatar")
	if err != nil {
		p = "/employees/" + url.PathEscape(id) + "/avatar"
	}
	raw := c.BuildURL(p)
	if u, err := c.resolve(raw); err == nil {
		return u.String()
	}
	return raw
}

// UploadAvatar handles POST /employees/{id}/avatar as multipart/form-data.
// The image is checked locally first: files over MaxAvatarSize or whose
// content is not PNG, JPEG, or WebP fail with domain.ErrValidation and no
// request is sent.
func (c *Client) UploadAvatar(ctx context.Context, id string, file openapi_types.File) (domain.AvatarUpload, error) {
	data, err := file.Bytes()
	if err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", fmt.Errorf("read file: %w", err))
	}
	contentType, err := checkAvatar(data)
	if err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}

	p, err := employeePath(id, "/avatar")
	if err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}
	u, err := c.resolve(c.BuildURL(p))
	if err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+quoteEscaper.Replace(filename(file))+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}
	if _, err := part.Write(data); err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}
	if err := mw.Close(); err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &body)
	if err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.do(req)
	if err != nil {
		return domain.AvatarUpload{}, wrap("UploadAvatar", err)
	}
	defer resp.Body.Close()

	out, err := decodeResponse[domain.AvatarUpload](resp)
	return out, wrap("UploadAvatar", err)
}

// checkAvatar enforces the size limit and sniffs the content type.
func checkAvatar(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: avatar file is empty", domain.ErrValidation)
	}
	if len(data) > MaxAvatarSize {
		return "", fmt.Errorf("%w: avatar exceeds %d bytes", domain.ErrValidation, MaxAvatarSize)
	}
	mt := mimetype.Detect(data)
	for _, allowed := range avatarTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported avatar type %s", domain.ErrValidation, mt.String())
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func filename(file openapi_types.File) string {
	if name := file.Filename(); name != "" {
		return name
	}
	return "avatar"
}

// AllowedAvatarTypes lists the content types UploadAvatar accepts.
func AllowedAvatarTypes() []string {
	return slices.Clone(avatarTypes)
}
