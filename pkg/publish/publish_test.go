package publish

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
	"github.com/vango-dev/mount/pkg/render"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func mountedDocument(t *testing.T) *dom.Document {
	t.Helper()
	doc := dom.Blank()
	d := element.MustNew("a", element.Href("http://example.com"), element.Content("Click"))
	if err := render.Render(d, doc.GetElementByID("root")); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestPublishS3(t *testing.T) {
	putter := &fakePutter{}
	p := New(NewS3Store(putter, "site", "pages/"))

	res, err := p.Publish(context.Background(), "/index.html", mountedDocument(t))
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if res.Key != "index.html" {
		t.Errorf("Key = %q, want index.html", res.Key)
	}
	if res.Location != "s3://site/pages/index.html" {
		t.Errorf("Location = %q", res.Location)
	}
	if len(putter.inputs) != 1 {
		t.Fatalf("expected 1 PutObject, got %d", len(putter.inputs))
	}

	in := putter.inputs[0]
	if aws.ToString(in.Bucket) != "site" || aws.ToString(in.Key) != "pages/index.html" {
		t.Errorf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != ContentTypeHTML {
		t.Errorf("ContentType = %q", aws.ToString(in.ContentType))
	}
	if aws.ToInt64(in.ContentLength) != int64(res.Size) {
		t.Errorf("ContentLength = %d, want %d", aws.ToInt64(in.ContentLength), res.Size)
	}
	if !strings.Contains(putter.bodies[0], `<div id="root"><a href="http://example.com">Click</a></div>`) {
		t.Errorf("uploaded body missing mounted element: %s", putter.bodies[0])
	}
}

func TestPublishS3Failure(t *testing.T) {
	putter := &fakePutter{err: stderrors.New("access denied")}
	p := New(NewS3Store(putter, "site", ""))

	_, err := p.Publish(context.Background(), "index.html", dom.Blank())
	if errors.Code(err) != errors.CodePublishFailed {
		t.Fatalf("Publish() = %v, want M040", err)
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("error should carry the cause: %v", err)
	}
}

func TestPublishNotConfigured(t *testing.T) {
	tests := []struct {
		name string
		p    *Publisher
	}{
		{"nil store", New(nil)},
		{"empty bucket", New(NewS3Store(&fakePutter{}, "", ""))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Publish(context.Background(), "index.html", dom.Blank())
			if errors.Code(err) != errors.CodePublishDisabled {
				t.Errorf("Publish() = %v, want M041", err)
			}
		})
	}
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"index.html", "index.html", true},
		{"/docs/page.html", "docs/page.html", true},
		{"a/./b.html", "a/b.html", true},
		{"", "", false},
		{"  ", "", false},
		{"../escape.html", "", false},
		{"a/../../x", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cleanKey(tt.name)
			if tt.ok {
				if err != nil || got != tt.want {
					t.Errorf("cleanKey(%q) = %q, %v; want %q", tt.name, got, err, tt.want)
				}
				return
			}
			if errors.Code(err) != errors.CodePublishFailed {
				t.Errorf("cleanKey(%q) error = %v, want M040", tt.name, err)
			}
		})
	}
}

func TestPublishDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	res, err := New(store).Publish(context.Background(), "site/index.html", mountedDocument(t))
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	want := filepath.Join(dir, "site", "index.html")
	if res.Location != want {
		t.Errorf("Location = %q, want %q", res.Location, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != res.Size || !strings.Contains(string(data), "Click") {
		t.Errorf("unexpected file contents: %s", data)
	}
}

// isolateAWSEnv points the AWS config chain at the test's environment only.
func isolateAWSEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_SESSION_TOKEN", "")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
}

func TestNewS3Client(t *testing.T) {
	isolateAWSEnv(t)

	client, err := NewS3Client(context.Background(), S3Options{
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
	})
	if err != nil {
		t.Fatalf("NewS3Client() error: %v", err)
	}

	opts := client.Options()
	if opts.Region != "eu-west-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %q", aws.ToString(opts.BaseEndpoint))
	}
	if !opts.UsePathStyle {
		t.Error("UsePathStyle should be set")
	}

	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "secret" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestNewS3Client_RegionFromEnvironment(t *testing.T) {
	isolateAWSEnv(t)
	t.Setenv("AWS_REGION", "ap-southeast-2")

	client, err := NewS3Client(context.Background(), S3Options{})
	if err != nil {
		t.Fatalf("NewS3Client() error: %v", err)
	}

	opts := client.Options()
	if opts.Region != "ap-southeast-2" {
		t.Errorf("Region = %q, want ap-southeast-2", opts.Region)
	}
	if opts.BaseEndpoint != nil {
		t.Errorf("BaseEndpoint = %q, want unset", aws.ToString(opts.BaseEndpoint))
	}
	if opts.UsePathStyle {
		t.Error("UsePathStyle should not be set")
	}
}

func TestNewS3Client_BadSharedConfig(t *testing.T) {
	isolateAWSEnv(t)
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("[profile broken]\nsource_profile = missing\nrole_arn = arn:aws:iam::123456789012:role/x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWS_CONFIG_FILE", path)
	t.Setenv("AWS_PROFILE", "broken")

	_, err := NewS3Client(context.Background(), S3Options{Region: "us-east-1"})
	if errors.Code(err) != errors.CodePublishFailed {
		t.Errorf("NewS3Client() error = %v, want %s", err, errors.CodePublishFailed)
	}
}
