package objstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	url := PublicURL("https://example.supabase.co", "photos", "123_abc.jpg")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/photos/123_abc.jpg", url)

	// Trailing slash on the base URL must not produce a double slash
	url = PublicURL("https://example.supabase.co/", "photos", "123_abc.jpg")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/photos/123_abc.jpg", url)
}
