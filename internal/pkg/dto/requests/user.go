package requests

type UpdateProfile struct {
	Name           string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	Phone          string `json:"phone,omitempty"`
	Gender         string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	ProfilePicture string `json:"profilePicture,omitempty"`

	// Filled by the controller after decoding and validating the upload.
	ProfilePictureData      []byte `json:"-"`
	ProfilePictureExtension string `json:"-"`
	ProfilePictureURL       string `json:"-"`
}
