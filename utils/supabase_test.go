package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupabaseObjectPath(t *testing.T) {
	s := NewSupabaseStorage("https://proj.supabase.co/", "key", "uploads")

	tests := []struct {
		name   string
		url    string
		object string
		ok     bool
	}{
		{"public url", "https://proj.supabase.co/storage/v1/object/public/uploads/images/a.jpg", "images/a.jpg", true},
		{"query string", "https://proj.supabase.co/storage/v1/object/public/uploads/images/a.jpg?t=1", "images/a.jpg", true},
		{"escaped", "https://proj.supabase.co/storage/v1/object/public/uploads/images/my%20pic.png", "images/my pic.png", true},
		{"other bucket", "https://proj.supabase.co/storage/v1/object/public/avatars/a.jpg", "", false},
		{"other host", "https://cdn.example.com/storage/v1/object/public/uploads/a.jpg", "", false},
		{"bucket only", "https://proj.supabase.co/storage/v1/object/public/uploads/", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			object, ok := s.ObjectPath(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.object, object)
		})
	}
}

func TestSupabasePublicURLRoundTrip(t *testing.T) {
	s := NewSupabaseStorage("https://proj.supabase.co", "key", "uploads")
	u := s.PublicURL("images/b.png")
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/uploads/images/b.png", u)

	object, ok := s.ObjectPath(u)
	assert.True(t, ok)
	assert.Equal(t, "images/b.png", object)
}

func TestSupabaseDeleteIgnoresForeignURL(t *testing.T) {
	s := NewSupabaseStorage("https://proj.supabase.co", "key", "uploads")
	assert.NoError(t, s.Delete("https://elsewhere.test/pic.png"))
}
