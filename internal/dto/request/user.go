package request

type UpdateProfileRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=50"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}

// UploadDocumentsRequest carries the verification document URLs. All
// four must be on file before the user can book.
type UploadDocumentsRequest struct {
	ProfilePhotoURL   *string `json:"profile_photo_url,omitempty" validate:"omitempty,url"`
	IDCardPhotoURL    *string `json:"id_card_photo_url,omitempty" validate:"omitempty,url"`
	CriminalRecordURL *string `json:"criminal_record_url,omitempty" validate:"omitempty,url"`
	DriverLicenseURL  *string `json:"driver_license_url,omitempty" validate:"omitempty,url"`
}
