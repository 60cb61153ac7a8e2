package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/emolens/pkg/adapter"
)

// mockStorage keys blobs by object path
type mockStorage struct {
	objects map[string][]byte
}

func (m *mockStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	return nil, goerr.New("not used")
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, goerr.New("object not found", goerr.V("key", key))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestFetchAudio(t *testing.T) {
	blob := []byte{0x00, 0x01, 0x02, 0x03}
	st := &mockStorage{objects: map[string][]byte{
		adapter.AudioKey("user-1", "rec-1"): blob,
	}}

	t.Run("streams the archived blob", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := fetchAudio(context.Background(), st, "user-1", "rec-1", &buf)
		gt.NoError(t, err)
		gt.Equal(t, n, int64(len(blob)))
		gt.Equal(t, buf.Bytes(), blob)
	})

	t.Run("unknown record fails", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := fetchAudio(context.Background(), st, "user-1", "rec-404", &buf)
		gt.Error(t, err)
		gt.Equal(t, buf.Len(), 0)
	})

	t.Run("another user's record is out of reach", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := fetchAudio(context.Background(), st, "user-2", "rec-1", &buf)
		gt.Error(t, err)
	})
}
