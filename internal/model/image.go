package model

// ImageSource identifies where a resolved image came from.
type ImageSource string

// Image sources, in selection priority order.
const (
	ImageSourceUploaded  ImageSource = "uploaded"
	ImageSourceURL       ImageSource = "url"
	ImageSourceGenerated ImageSource = "generated"
)

// ImageGenerationRequest is the body of a standalone image request.
type ImageGenerationRequest struct {
	ProductName   string `json:"product_name" binding:"required,min=1,max=200"`
	BrandName     string `json:"brand_name,omitempty" binding:"max=100"`
	Description   string `json:"description,omitempty" binding:"max=1000"`
	ImageURL      string `json:"image_url,omitempty" binding:"max=1000"`
	GenerateImage bool   `json:"generate_image,omitempty"`
}

// ImageResult describes a resolved product image. At least one of
// ImagePath/ImageURL is populated. A nil result means no image was
// produced, which is a valid outcome rather than an error.
type ImageResult struct {
	ImagePath string      `json:"image_path,omitempty"`
	ImageURL  string      `json:"image_url,omitempty"`
	Source    ImageSource `json:"source"`
	Generated bool        `json:"generated"`
}
