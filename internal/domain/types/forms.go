package types

// Credentials is the login form. Both fields are free text.
type Credentials struct {
	EmailOrPhone string
	Password     string
}

// LoginRequest is the wire body of POST /api/v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationForm is the sign-up form as the user filled it in. ProfileImage
// is the locally picked file; it is replaced by the uploaded URL on the wire.
type RegistrationForm struct {
	FullName        string  `json:"full_name" validate:"required,min=2,nodigits"`
	Email           string  `json:"email" validate:"required,looseemail"`
	Phone           string  `json:"phone" validate:"required,tendigits"`
	Password        string  `json:"password" validate:"required,min=6"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required,eqfield=Password"`
	ProfileImage    FileRef `json:"-"`
}

// RegisterRequest is the wire body of POST /api/v1/register.
type RegisterRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ProfileImage    string `json:"profile_image,omitempty"`
}

// Request builds the wire body with the uploaded image URL substituted in.
func (f RegistrationForm) Request(profileImageURL string) RegisterRequest {
	return RegisterRequest{
		FullName:        f.FullName,
		Email:           f.Email,
		Phone:           f.Phone,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		ProfileImage:    profileImageURL,
	}
}
