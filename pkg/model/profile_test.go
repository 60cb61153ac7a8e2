package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/emolens/pkg/model"
)

func TestProfileAvatarExclusive(t *testing.T) {
	t.Run("emoji clears image and generated flag", func(t *testing.T) {
		p := &model.UserProfile{}
		p.SetImage("content://media/external/images/1")
		p.SetGeneratedEmoji("🤖")
		p.SetEmoji("😀")

		gt.Equal(t, p.AvatarEmoji, "😀")
		gt.Equal(t, p.ImageURI, "")
		gt.False(t, p.GeneratedAvatar)
	})

	t.Run("image clears emoji fields", func(t *testing.T) {
		p := &model.UserProfile{}
		p.SetEmoji("😀")
		p.SetImage("content://media/external/images/2")

		gt.Equal(t, p.ImageURI, "content://media/external/images/2")
		gt.Equal(t, p.AvatarEmoji, "")
		gt.False(t, p.GeneratedAvatar)
	})

	t.Run("generated emoji clears image and keeps flag", func(t *testing.T) {
		p := &model.UserProfile{}
		p.SetImage("content://media/external/images/3")
		p.SetGeneratedEmoji("🦊")

		gt.Equal(t, p.AvatarEmoji, "🦊")
		gt.Equal(t, p.ImageURI, "")
		gt.True(t, p.GeneratedAvatar)
	})
}
