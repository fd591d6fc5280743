package linkedin

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// wire constants for the asset and ugc endpoints
const (
	recipeFeedshareImage = "urn:li:digitalmediaRecipe:feedshare-image"
	serviceProviderLBA   = "LBA"
	uploadMechanismKey   = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"

	shareContentKey  = "com.linkedin.ugc.ShareContent"
	visibilityKey    = "com.linkedin.ugc.MemberNetworkVisibility"
	lifecyclePublish = "PUBLISHED"
	visibilityPublic = "PUBLIC"
	mediaStatusReady = "READY"
)

// MediaCategory is the shareMediaCategory flag
type MediaCategory string

// media categories we publish
const (
	MediaNone  MediaCategory = "NONE"
	MediaImage MediaCategory = "IMAGE"
)

// registerUploadRequest is the phase one body
type registerUploadRequest struct {
	RegisterUploadRequest registerUploadSpec `json:"registerUploadRequest"`
}

type registerUploadSpec struct {
	Recipes         []string `json:"recipes"`
	Owner           string   `json:"owner"`
	ServiceProvider string   `json:"serviceProvider"`
}

func newRegisterUploadRequest(owner string) registerUploadRequest {
	return registerUploadRequest{RegisterUploadRequest: registerUploadSpec{
		Recipes:         []string{recipeFeedshareImage},
		Owner:           owner,
		ServiceProvider: serviceProviderLBA,
	}}
}

// registerUploadResponse is the phase one answer
type registerUploadResponse struct {
	Value struct {
		Asset           string `json:"asset"`
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
	} `json:"value"`
}

// UploadRegistration is what phase one hands to phase two; it is not kept after the push
type UploadRegistration struct {
	Asset     string `json:"asset"`
	UploadURL string `json:"upload_url"`
}

func (r registerUploadResponse) registration() (UploadRegistration, bool) {
	out := UploadRegistration{Asset: strings.TrimSpace(r.Value.Asset)}
	if m, ok := r.Value.UploadMechanism[uploadMechanismKey]; ok {
		out.UploadURL = strings.TrimSpace(m.UploadURL)
	}
	return out, out.Asset != "" && out.UploadURL != ""
}

// PublishPayload is the ugcPosts body; build it with NewPublishPayload
type PublishPayload struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]ShareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

// ShareContent is the com.linkedin.ugc.ShareContent block
type ShareContent struct {
	ShareCommentary    ShareCommentary `json:"shareCommentary"`
	ShareMediaCategory MediaCategory   `json:"shareMediaCategory"`
	Media              []ShareMedia    `json:"media,omitempty"`
}

// ShareCommentary is the post text
type ShareCommentary struct {
	Text string `json:"text"`
}

// ShareMedia references one uploaded asset
type ShareMedia struct {
	Status string `json:"status"`
	Media  string `json:"media"`
}

// NewPublishPayload builds a fresh public payload for author
// an empty assetURN gives category NONE and no media list, anything else gives IMAGE with one entry
// the reference is not checked for shape or liveness
func NewPublishPayload(author, text, assetURN string) (PublishPayload, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return PublishPayload{}, missingCredentials(opPublish)
	}
	sc := ShareContent{
		// commentary goes out in NFC so composed and decomposed input post the same
		ShareCommentary:    ShareCommentary{Text: norm.NFC.String(text)},
		ShareMediaCategory: MediaNone,
	}
	if ref := strings.TrimSpace(assetURN); ref != "" {
		sc.ShareMediaCategory = MediaImage
		sc.Media = []ShareMedia{{Status: mediaStatusReady, Media: ref}}
	}
	return PublishPayload{
		Author:          author,
		LifecycleState:  lifecyclePublish,
		SpecificContent: map[string]ShareContent{shareContentKey: sc},
		Visibility:      map[string]string{visibilityKey: visibilityPublic},
	}, nil
}

// Share returns the share block
func (p PublishPayload) Share() ShareContent { return p.SpecificContent[shareContentKey] }
