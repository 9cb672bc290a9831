package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestNewObjectNameKeepsExtension(t *testing.T) {
	a := NewObjectName(".PDF")
	b := NewObjectName(".PDF")
	if a == b {
		t.Fatalf("expected distinct names, got %q twice", a)
	}
	if !strings.HasSuffix(a, ".pdf") {
		t.Fatalf("expected lowercased extension, got %q", a)
	}
}

func TestMediaType(t *testing.T) {
	declared, err := MediaType(bytes.NewReader([]byte("x")), "application/pdf")
	if err != nil || declared != "application/pdf" {
		t.Fatalf("expected declared type, got %q (%v)", declared, err)
	}

	r := bytes.NewReader([]byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n"))
	sniffed, err := MediaType(r, "application/octet-stream")
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if sniffed != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", sniffed)
	}
	if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
		t.Fatalf("expected reader to be rewound, at %d", pos)
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "1-abc.txt", strings.NewReader("hello"), "text/plain"); err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, err := store.Open(ctx, "1-abc.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	body, _ := io.ReadAll(rc)
	if string(body) != "hello" {
		t.Fatalf("unexpected content %q", body)
	}

	if _, err := store.Open(ctx, "missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Open(ctx, "../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected traversal to be rejected, got %v", err)
	}
	if err := store.Save(ctx, "../escape.txt", strings.NewReader("x"), ""); err == nil {
		t.Fatalf("expected traversal save to fail")
	}
}

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3StoreRoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	store := &S3Store{bucket: "notes", client: fake}
	ctx := context.Background()

	if err := store.Save(ctx, "1-abc.pdf", strings.NewReader("pdf"), "application/pdf"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if fake.types[basePath+"1-abc.pdf"] != "application/pdf" {
		t.Fatalf("expected object stored under attachments prefix with its type")
	}

	rc, err := store.Open(ctx, "1-abc.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "pdf" {
		t.Fatalf("unexpected content %q", body)
	}

	if _, err := store.Open(ctx, "missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
