package utils

import (
	"fmt"
	"net/url"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

const objectPathMarker = "/storage/v1/object/"

// SupabaseStorage quản lý ảnh bài viết trong một bucket Supabase.
// Upload do client thực hiện; server chỉ dọn object khi bài viết bị xóa.
type SupabaseStorage struct {
	baseURL string
	bucket  string
	client  *storage.Client
}

func NewSupabaseStorage(supabaseURL, supabaseKey, bucket string) *SupabaseStorage {
	base := strings.TrimRight(supabaseURL, "/")
	return &SupabaseStorage{
		baseURL: base,
		bucket:  bucket,
		client:  storage.NewClient(base+"/storage/v1", supabaseKey, nil),
	}
}

// PublicURL trả về URL public của object trong bucket
func (s *SupabaseStorage) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s%spublic/%s/%s", s.baseURL, objectPathMarker, s.bucket, objectPath)
}

// ObjectPath tách đường dẫn object từ public URL.
// ok = false nếu URL không thuộc project/bucket này.
func (s *SupabaseStorage) ObjectPath(publicURL string) (string, bool) {
	if publicURL == "" || !strings.HasPrefix(publicURL, s.baseURL+objectPathMarker) {
		return "", false
	}

	rest := strings.TrimPrefix(publicURL, s.baseURL+objectPathMarker)
	rest = strings.TrimPrefix(rest, "public/")

	// rest => "<bucket>/<path/to/object...>"
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 || parts[0] != s.bucket || parts[1] == "" {
		return "", false
	}
	object := parts[1]
	if qIdx := strings.Index(object, "?"); qIdx != -1 {
		object = object[:qIdx]
	}
	if u, err := url.PathUnescape(object); err == nil {
		object = u
	}
	return object, true
}

// Delete xóa object ứng với public URL; URL ngoài bucket được bỏ qua
func (s *SupabaseStorage) Delete(publicURL string) error {
	object, ok := s.ObjectPath(publicURL)
	if !ok {
		return nil
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{object}); err != nil {
		return fmt.Errorf("remove %s/%s: %w", s.bucket, object, err)
	}
	return nil
}
