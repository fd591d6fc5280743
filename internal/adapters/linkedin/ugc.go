package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"postpilot/internal/core/credentials"
)

const (
	opPublish = "publish"

	// PublishedMessage is the PublishResult message on success
	PublishedMessage = "Post published successfully on LinkedIn"
)

// PublishResult is the outcome of a 201 publish
type PublishResult struct {
	Status  int    `json:"status"`
	PostURN string `json:"post_urn,omitempty"`
	Message string `json:"message"`
}

// Publish posts text, with one image when imageAssetURN is set, as the credentials' actor
//
// Success is 201 and nothing else; 200 and other 2xx come back as KindPublishRejected with the body.
// This call is not idempotent and is never retried here. A caller that retries after a
// transport error or timeout may create a duplicate post, since the upstream has no dedup key.
func (c *Client) Publish(ctx context.Context, text string, creds credentials.Credentials, imageAssetURN string) (PublishResult, error) {
	if !creds.Complete() {
		return PublishResult{}, missingCredentials(opPublish)
	}
	payload, err := NewPublishPayload(creds.ActorID, text, imageAssetURN)
	if err != nil {
		return PublishResult{}, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return PublishResult{}, &Error{Kind: KindInvalidRequest, Op: opPublish, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.opts.APIBaseURL+"/v2/ugcPosts", bytes.NewReader(body), creds.AccessToken)
	if err != nil {
		return PublishResult{}, &Error{Kind: KindInvalidRequest, Op: opPublish, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(restliHeader, restliVersion)

	rep, err := c.do(opPublish, req)
	if err != nil {
		return PublishResult{}, err
	}
	if rep.Status != http.StatusCreated {
		return PublishResult{}, c.fail(KindPublishRejected, opPublish, req, rep, "")
	}

	res := PublishResult{
		Status:  rep.Status,
		PostURN: rep.Header.Get("X-RestLi-Id"),
		Message: PublishedMessage,
	}
	c.log.Info().Str("post", res.PostURN).Str("category", string(payload.Share().ShareMediaCategory)).Msg("post published")
	return res, nil
}
