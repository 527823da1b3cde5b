package transfer

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SetupSave struct {
	ProductName    string   `json:"product_name"`
	Description    string   `json:"description"`
	TargetAudience string   `json:"target_audience"`
	KeyFeatures    []string `json:"key_features"`
	TonePreference string   `json:"tone_preference"`
	CustomTone     string   `json:"custom_tone"`
	XHandle        string   `json:"x_handle"`
}

func (s SetupSave) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ProductName, validation.Required, validation.Length(0, 120)),
		validation.Field(&s.Description, validation.Required),
		validation.Field(&s.TargetAudience, validation.Required),
		validation.Field(&s.TonePreference, validation.Required),
	)
}
