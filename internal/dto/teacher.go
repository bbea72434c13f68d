package dto

// TeacherResponse teacher as exposed by the API. Never carries the
// password hash.
type TeacherResponse struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
}

// DisplayName is "First Last".
func (t TeacherResponse) DisplayName() string {
	return t.FirstName + " " + t.LastName
}

// TeacherEnvelope wraps the single-teacher lookup.
type TeacherEnvelope struct {
	Teacher TeacherResponse `json:"teacher"`
}

// LoginRequest teacher login.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse issued on login.
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int             `json:"expires_in"`
	Teacher     TeacherResponse `json:"teacher"`
}

// CreateTeacherRequest registers a teacher account.
type CreateTeacherRequest struct {
	FirstName string `json:"firstname" binding:"required,max=100"`
	LastName  string `json:"lastname"  binding:"required,max=100"`
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required,min=6"`
	Role      string `json:"role"      binding:"omitempty,oneof=admin teacher"`
}
