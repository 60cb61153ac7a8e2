package model

// UserProfile is the per-user display profile. The three avatar fields are
// mutually exclusive: at most one of ImageURI, AvatarEmoji, or a generated
// emoji (AvatarEmoji + GeneratedAvatar) is set at any time.
type UserProfile struct {
	Name            string `firestore:"name" json:"name"`
	Email           string `firestore:"email" json:"email"`
	ImageURI        string `firestore:"imageUriString" json:"image_uri,omitempty"`
	AvatarEmoji     string `firestore:"avatarEmoji" json:"avatar_emoji,omitempty"`
	GeneratedAvatar bool   `firestore:"isGeneratedAvatar" json:"is_generated_avatar"`
}

// SetImage sets a photo avatar and clears the emoji fields.
func (p *UserProfile) SetImage(uri string) {
	p.ImageURI = uri
	p.AvatarEmoji = ""
	p.GeneratedAvatar = false
}

// SetEmoji sets a user-picked emoji avatar and clears the other fields.
func (p *UserProfile) SetEmoji(emoji string) {
	p.AvatarEmoji = emoji
	p.ImageURI = ""
	p.GeneratedAvatar = false
}

// SetGeneratedEmoji sets an AI-generated emoji avatar and clears the photo field.
func (p *UserProfile) SetGeneratedEmoji(emoji string) {
	p.AvatarEmoji = emoji
	p.ImageURI = ""
	p.GeneratedAvatar = true
}
