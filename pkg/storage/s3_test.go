package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

type fakePutObject struct {
	input   *s3.PutObjectInput
	body    []byte
	hasDeadline bool
	err     error
}

func (f *fakePutObject) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = input
	f.body, _ = io.ReadAll(input.Body)
	_, f.hasDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Config_Enabled(t *testing.T) {
	if (S3Config{}).Enabled() {
		t.Error("Expected empty config to be disabled")
	}
	if !(S3Config{Bucket: "renders"}).Enabled() {
		t.Error("Expected config with bucket to be enabled")
	}
}

func TestNewS3Uploader_RequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(S3Config{}); err == nil {
		t.Error("Expected an error without a bucket")
	}
}

func TestNewS3Uploader(t *testing.T) {
	u, err := NewS3Uploader(S3Config{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "renders",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if u.bucket != "renders" {
		t.Errorf("Expected bucket renders, got %q", u.bucket)
	}
}

func TestS3Uploader_Upload(t *testing.T) {
	fake := &fakePutObject{}
	u := &S3Uploader{client: fake, bucket: "renders"}

	data := []byte("BM fake image")
	if err := u.Upload(context.Background(), "frames/a.bmp", "image/bmp", data); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if aws.StringValue(fake.input.Bucket) != "renders" {
		t.Errorf("Unexpected bucket %q", aws.StringValue(fake.input.Bucket))
	}
	if aws.StringValue(fake.input.Key) != "frames/a.bmp" {
		t.Errorf("Unexpected key %q", aws.StringValue(fake.input.Key))
	}
	if aws.StringValue(fake.input.ContentType) != "image/bmp" {
		t.Errorf("Unexpected content type %q", aws.StringValue(fake.input.ContentType))
	}
	if aws.Int64Value(fake.input.ContentLength) != int64(len(data)) {
		t.Errorf("Unexpected content length %d", aws.Int64Value(fake.input.ContentLength))
	}
	if string(fake.body) != string(data) {
		t.Errorf("Unexpected body %q", fake.body)
	}
	if !fake.hasDeadline {
		t.Error("Expected the upload to run with a deadline")
	}
}

func TestS3Uploader_UploadError(t *testing.T) {
	denied := errors.New("access denied")
	u := &S3Uploader{client: &fakePutObject{err: denied}, bucket: "renders"}

	err := u.Upload(context.Background(), "a.png", "image/png", []byte{1})
	if !errors.Is(err, denied) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}
