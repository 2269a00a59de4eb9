package domain

type User struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	UserName       string `json:"userName"`
	BirthDate      string `json:"birthDate,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}
