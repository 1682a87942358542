package objectstore_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/objectstore"
)

type stubS3 struct {
	putInput *s3.PutObjectInput
	putBody  []byte
	putErr   error
	headErr  error
}

func (s *stubS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.putInput = in
	if in.Body != nil {
		s.putBody, _ = io.ReadAll(in.Body)
	}
	if s.putErr != nil {
		return nil, s.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (s *stubS3) HeadObject(_ context.Context, _ *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if s.headErr != nil {
		return nil, s.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func newStore(t *testing.T, client objectstore.API) *objectstore.Store {
	t.Helper()
	store, err := objectstore.NewStore(client, &configloader.Storage{S3: configloader.S3{Bucket: "clips", Region: "us-east-1"}}, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	return store
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("7f3b1c1e-2d4a-4f7b-9a61-1b2c3d4e5f60")
	require.Equal(t, "videos/7f3b1c1e-2d4a-4f7b-9a61-1b2c3d4e5f60.mp4", objectstore.ObjectKey(id, "clip.mp4"))
	require.Equal(t, "videos/7f3b1c1e-2d4a-4f7b-9a61-1b2c3d4e5f60.mov", objectstore.ObjectKey(id, "my.holiday.mov"))
	require.Equal(t, "videos/7f3b1c1e-2d4a-4f7b-9a61-1b2c3d4e5f60", objectstore.ObjectKey(id, "README"))
}

func TestNewObjectKey_Unique(t *testing.T) {
	a := objectstore.NewObjectKey("clip.mp4")
	b := objectstore.NewObjectKey("clip.mp4")
	require.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, "videos/"))
	require.True(t, strings.HasSuffix(a, ".mp4"))
}

func TestStorePut_PreservesBodyAndInfersType(t *testing.T) {
	stub := &stubS3{}
	store := newStore(t, stub)

	payload := bytes.Repeat([]byte("x"), 5000)
	obj, err := store.Put(context.Background(), "videos/a.mp4", bytes.NewReader(payload), int64(len(payload)), "a.mp4")
	require.NoError(t, err)
	require.Equal(t, "clips", obj.Bucket)
	require.Equal(t, "videos/a.mp4", obj.Key)
	require.Equal(t, "video/mp4", obj.ContentType)

	require.Equal(t, payload, stub.putBody)
	require.Equal(t, "clips", *stub.putInput.Bucket)
	require.EqualValues(t, len(payload), *stub.putInput.ContentLength)
}

func TestStorePut_Error(t *testing.T) {
	store := newStore(t, &stubS3{putErr: errors.New("denied")})
	_, err := store.Put(context.Background(), "videos/a.mp4", strings.NewReader("data"), 4, "a.mp4")
	require.Error(t, err)
	require.Contains(t, err.Error(), "denied")
}

func TestStoreExists(t *testing.T) {
	ctx := context.Background()

	ok, err := newStore(t, &stubS3{}).Exists(ctx, "", "videos/a.mp4")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = newStore(t, &stubS3{headErr: &types.NotFound{}}).Exists(ctx, "clips", "videos/a.mp4")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = newStore(t, &stubS3{headErr: errors.New("timeout")}).Exists(ctx, "clips", "videos/a.mp4")
	require.Error(t, err)
}

func TestNewStore_RequiresBucket(t *testing.T) {
	_, err := objectstore.NewStore(&stubS3{}, &configloader.Storage{}, log.NewStdLogger(io.Discard))
	require.Error(t, err)
}

func TestDetectContentType_SniffsContent(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	ct, r, err := objectstore.DetectContentType(bytes.NewReader(png), "noext")
	require.NoError(t, err)
	require.Equal(t, "image/png", ct)
	got, _ := io.ReadAll(r)
	require.Equal(t, png, got)
}

func TestDetectContentType_ReturnsSeekableBodyRewound(t *testing.T) {
	payload := bytes.Repeat([]byte("y"), 5000)
	body := bytes.NewReader(payload)

	_, r, err := objectstore.DetectContentType(body, "clip.mp4")
	require.NoError(t, err)
	require.Same(t, body, r)
	got, _ := io.ReadAll(r)
	require.Equal(t, payload, got)
}

func TestStorePut_SpoolsUnseekableBody(t *testing.T) {
	stub := &stubS3{}
	store := newStore(t, stub)

	payload := bytes.Repeat([]byte("z"), 4096)
	body := struct{ io.Reader }{bytes.NewReader(payload)}
	_, err := store.Put(context.Background(), "videos/b.mp4", body, 0, "b.mp4")
	require.NoError(t, err)

	_, ok := stub.putInput.Body.(io.Seeker)
	require.True(t, ok)
	require.Equal(t, payload, stub.putBody)
	require.EqualValues(t, len(payload), *stub.putInput.ContentLength)
}
