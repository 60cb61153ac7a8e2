package model

// User is a signed-in account returned by the auth provider.
type User struct {
	ID          string `json:"id" yaml:"uid"`
	Email       string `json:"email" yaml:"email"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	IDToken     string `json:"-" yaml:"id_token"`
}
