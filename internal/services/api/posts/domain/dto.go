// Package domain holds DTOs for direct publishing and asset upload
package domain

// PublishInput is a post written by the caller rather than the agent
type PublishInput struct {
	Text          string `json:"text"                      validate:"required,max=3000" example:"Shipping a new release today."`
	ImageAssetURN string `json:"image_asset_urn,omitempty" validate:"omitempty,li_urn" example:"urn:li:digitalmediaAsset:C5522AQ"`
}

// UploadInput names an image relative to LINKEDIN_MEDIA_ROOT
type UploadInput struct {
	FilePath string `json:"file_path" validate:"required,max=1024" example:"cover.png"`
}

// UploadOutput is the asset a later publish can reference
type UploadOutput struct {
	AssetURN string `json:"asset_urn" example:"urn:li:digitalmediaAsset:C5522AQ"`
}
