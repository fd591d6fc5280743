package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	stderrs "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"postpilot/internal/core/credentials"
)

const (
	opRegister = "register_upload"
	opPush     = "push_bytes"
	opUpload   = "upload"

	// http.DetectContentType looks at no more than this
	sniffLen = 512
)

// RegisterUpload is phase one: ask for an asset urn and a one shot upload url
func (c *Client) RegisterUpload(ctx context.Context, creds credentials.Credentials) (UploadRegistration, error) {
	if !creds.Complete() {
		return UploadRegistration{}, missingCredentials(opRegister)
	}
	body, err := json.Marshal(newRegisterUploadRequest(creds.ActorID))
	if err != nil {
		return UploadRegistration{}, &Error{Kind: KindAssetRegister, Op: opRegister, Err: err}
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.opts.APIBaseURL+"/v2/assets?action=registerUpload",
		bytes.NewReader(body), creds.AccessToken)
	if err != nil {
		return UploadRegistration{}, &Error{Kind: KindAssetRegister, Op: opRegister, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(restliHeader, restliVersion)

	rep, err := c.do(opRegister, req)
	if err != nil {
		return UploadRegistration{}, err
	}
	if !rep.ok() {
		return UploadRegistration{}, c.fail(KindAssetRegister, opRegister, req, rep, "registration refused")
	}
	var out registerUploadResponse
	if err := json.Unmarshal(rep.Body, &out); err != nil {
		return UploadRegistration{}, c.fail(KindAssetRegister, opRegister, req, rep, "malformed registration")
	}
	reg, ok := out.registration()
	if !ok {
		return UploadRegistration{}, c.fail(KindAssetRegister, opRegister, req, rep, "registration missing asset or upload url")
	}
	return reg, nil
}

// PushBytes is phase two: stream body to the upload url from phase one
// size < 0 sends chunked
func (c *Client) PushBytes(ctx context.Context, uploadURL string, body io.Reader, size int64, creds credentials.Credentials) error {
	if !creds.Complete() {
		return missingCredentials(opPush)
	}
	if strings.TrimSpace(uploadURL) == "" {
		return &Error{Kind: KindAssetUpload, Op: opPush, Msg: "upload url is required"}
	}
	req, err := c.newRequest(ctx, http.MethodPost, uploadURL, body, creds.AccessToken)
	if err != nil {
		return &Error{Kind: KindAssetUpload, Op: opPush, Err: err}
	}
	if size >= 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	rep, err := c.do(opPush, req)
	if err != nil {
		return err
	}
	if !rep.ok() {
		return c.fail(KindAssetUpload, opPush, req, rep, "upload refused")
	}
	return nil
}

// Upload runs register then push for an image under the media root and returns the asset urn from register
// the file is opened before register so a bad path never leaves an orphan registration
// a register failure means push is never attempted; neither phase is resumable
func (c *Client) Upload(ctx context.Context, filePath string, creds credentials.Credentials) (string, error) {
	if !creds.Complete() {
		return "", missingCredentials(opUpload)
	}

	f, size, err := c.openImage(filePath)
	if err != nil {
		c.log.Warn().Err(err).Str("op", opUpload).Str("path", filePath).Msg("image refused")
		return "", err
	}
	defer func() { _ = f.Close() }()

	reg, err := c.RegisterUpload(ctx, creds)
	if err != nil {
		return "", err
	}
	if err := c.PushBytes(ctx, reg.UploadURL, f, size, creds); err != nil {
		return "", err
	}

	c.log.Info().Str("asset", reg.Asset).Int64("bytes", size).Msg("image uploaded")
	return reg.Asset, nil
}

// openImage resolves name inside the media root and checks it is a regular image file
// absolute paths, .. segments and symlinks leaving the root are all refused
func (c *Client) openImage(name string) (*os.File, int64, error) {
	invalid := func(msg string, err error) error {
		return &Error{Kind: KindInvalidRequest, Op: opUpload, Msg: msg, Err: err}
	}
	if c.opts.MediaRoot == "" {
		return nil, 0, invalid("image uploads are disabled: no media root configured", nil)
	}
	if !filepath.IsLocal(name) {
		return nil, 0, invalid("image path must be relative to the media root", nil)
	}

	f, err := os.OpenInRoot(c.opts.MediaRoot, name)
	if err != nil {
		return nil, 0, invalid("cannot open image", err)
	}
	st, err := f.Stat()
	if err != nil || !st.Mode().IsRegular() {
		_ = f.Close()
		return nil, 0, invalid("image path is not a regular file", err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !stderrs.Is(err, io.ErrUnexpectedEOF) && !stderrs.Is(err, io.EOF) {
		_ = f.Close()
		return nil, 0, &Error{Kind: KindAssetUpload, Op: opUpload, Msg: "cannot read image", Err: err}
	}
	if ct := http.DetectContentType(head[:n]); !strings.HasPrefix(ct, "image/") {
		_ = f.Close()
		return nil, 0, invalid("file is not an image: "+ct, nil)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, 0, &Error{Kind: KindAssetUpload, Op: opUpload, Msg: "cannot read image", Err: err}
	}
	return f, st.Size(), nil
}
