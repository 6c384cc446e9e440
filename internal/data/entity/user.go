package entity

type UserRole string

const (
	RoleRenter UserRole = "renter"
	RoleOwner  UserRole = "owner"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	Email             string   `db:"email"`
	PasswordHash      string   `db:"password"`
	FirstName         string   `db:"first_name"`
	LastName          string   `db:"last_name"`
	Phone             *string  `db:"phone"`
	Role              UserRole `db:"role"`
	Enabled           bool     `db:"enabled"`
	EmailVerified     bool     `db:"email_verified"`
	Banned            bool     `db:"banned"`
	AverageRating     *float32 `db:"average_rating"`
	ReportCount       int      `db:"report_count"`
	ProfilePhotoURL   *string  `db:"profile_photo_url"`
	IDCardPhotoURL    *string  `db:"id_card_photo_url"`
	CriminalRecordURL *string  `db:"criminal_record_url"`
	DriverLicenseURL  *string  `db:"driver_license_url"`
}

// IsEligibleForDiscount reports whether the user qualifies for the loyalty
// discount: average rating of 4.7 or better and no reports against them.
func (u *User) IsEligibleForDiscount() bool {
	return u.AverageRating != nil && *u.AverageRating >= 4.7 && u.ReportCount == 0
}

// HasRequiredDocuments checks the documents a renter must have on file
// before any booking is accepted.
func (u *User) HasRequiredDocuments() bool {
	return u.IDCardPhotoURL != nil &&
		u.CriminalRecordURL != nil &&
		u.DriverLicenseURL != nil &&
		u.ProfilePhotoURL != nil
}

// CanRent gates booking creation: account enabled, not banned, email
// verified and all required documents uploaded.
func (u *User) CanRent() bool {
	if !u.Enabled || u.Banned {
		return false
	}
	if !u.EmailVerified {
		return false
	}
	return u.HasRequiredDocuments()
}
