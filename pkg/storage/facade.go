package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/penlight-studio/folio/pkg/storage/ftp"
	"github.com/penlight-studio/folio/pkg/storage/gcs"
	"github.com/penlight-studio/folio/pkg/storage/local"
	"github.com/penlight-studio/folio/pkg/storage/s3"
)

// SignedURLExpiry is the lifetime of signed GCS URLs handed to clients.
const SignedURLExpiry = 60 * time.Minute

// Config holds the credential bundles for every backend. Exactly one backend
// is active, decided by which bundle is complete, in fixed priority order
// GCS, FTP, S3, local. The struct is built once at startup and never mutated.
type Config struct {
	UploadsDir string    `yaml:"uploads_dir"`
	GCS        GCSConfig `yaml:"gcs"`
	FTP        FTPConfig `yaml:"ftp"`
	S3         S3Config  `yaml:"s3"`
}

// GCSConfig holds Google Cloud Storage settings.
type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	ProjectID       string `yaml:"project_id"`
	KeyFile         string `yaml:"key_file"`
	CredentialsJSON string `yaml:"credentials_json"`
	PublicAccess    bool   `yaml:"public_access"`
}

// Configured reports whether the GCS bundle is complete.
func (c GCSConfig) Configured() bool {
	return c.Bucket != "" && c.ProjectID != ""
}

// FTPConfig holds FTP server settings.
type FTPConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Port     int    `yaml:"port"`
	Secure   bool   `yaml:"secure"`
	BasePath string `yaml:"base_path"`
	BaseURL  string `yaml:"base_url"`
}

// Configured reports whether the FTP bundle is complete.
func (c FTPConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

// S3Config holds S3-compatible storage settings.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PathStyle bool   `yaml:"path_style"`
	Presign   bool   `yaml:"presign"`
}

// Configured reports whether the S3 bundle is complete.
func (c S3Config) Configured() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Facade hides which backend is active. All read paths accept any stored
// reference form and normalize it before touching the driver, so records
// written before a backend migration keep resolving.
type Facade struct {
	cfg     Config
	backend Backend
	driver  Driver

	// backend-specific handles for URL strategies; nil unless active.
	gcs *gcs.Storage
	s3  *s3.Storage
}

// New selects and constructs the active backend from cfg. The priority is
// fixed: a complete GCS bundle wins, then FTP, then S3, then the local
// uploads directory as the fallback.
func New(cfg Config) (*Facade, error) {
	f := &Facade{cfg: cfg}

	switch {
	case cfg.GCS.Configured():
		driver, err := gcs.New(gcs.Config{
			Bucket:          cfg.GCS.Bucket,
			ProjectID:       cfg.GCS.ProjectID,
			KeyFile:         cfg.GCS.KeyFile,
			CredentialsJSON: cfg.GCS.CredentialsJSON,
			PublicAccess:    cfg.GCS.PublicAccess,
		})
		if err != nil {
			return nil, fmt.Errorf("init gcs backend: %w", err)
		}
		f.backend, f.driver, f.gcs = BackendGCS, driver, driver

	case cfg.FTP.Configured():
		driver, err := ftp.New(ftp.Config{
			Host:     cfg.FTP.Host,
			User:     cfg.FTP.User,
			Password: cfg.FTP.Password,
			Port:     cfg.FTP.Port,
			Secure:   cfg.FTP.Secure,
			BasePath: cfg.FTP.BasePath,
			BaseURL:  cfg.FTP.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init ftp backend: %w", err)
		}
		f.backend, f.driver = BackendFTP, driver

	case cfg.S3.Configured():
		driver, err := s3.New(s3.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PathStyle: cfg.S3.PathStyle,
			Presign:   cfg.S3.Presign,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 backend: %w", err)
		}
		f.backend, f.driver, f.s3 = BackendS3, driver, driver

	default:
		driver, err := local.New(cfg.UploadsDir)
		if err != nil {
			return nil, fmt.Errorf("init local backend: %w", err)
		}
		f.backend, f.driver = BackendLocal, driver
	}

	return f, nil
}

// ActiveBackend reports which backend the facade selected. The result is a
// pure function of the configuration, independent of call order.
func (f *Facade) ActiveBackend() Backend {
	return f.backend
}

// Driver exposes the active driver for callers that need raw operations.
func (f *Facade) Driver() Driver {
	return f.driver
}

// Upload writes data under the canonical filename via the active backend.
func (f *Facade) Upload(ctx context.Context, filename string, data []byte) error {
	if f == nil || f.driver == nil {
		return ErrNoBackend
	}
	return f.driver.Upload(ctx, Normalize(filename), data)
}

// Download resolves ref to its canonical filename and fetches the content.
func (f *Facade) Download(ctx context.Context, ref string) ([]byte, error) {
	if f == nil || f.driver == nil {
		return nil, ErrNoBackend
	}
	return f.driver.Download(ctx, Normalize(ref))
}

// Delete resolves ref and removes the file; missing files succeed silently.
func (f *Facade) Delete(ctx context.Context, ref string) error {
	if f == nil || f.driver == nil {
		return ErrNoBackend
	}
	return f.driver.Delete(ctx, Normalize(ref))
}

// Exists resolves ref and checks the active backend for it.
func (f *Facade) Exists(ctx context.Context, ref string) (bool, error) {
	if f == nil || f.driver == nil {
		return false, ErrNoBackend
	}
	return f.driver.Exists(ctx, Normalize(ref))
}

// URLFor computes the fastest access URL for ref. External embed links pass
// through untouched. For a public GCS bucket the direct URL is returned with
// no network call; otherwise GCS attempts a signed URL and degrades to the
// proxy form when signing is unavailable. FTP always proxies. S3 presigns
// when configured to, else proxies. With no cloud backend the local static
// path is returned.
func (f *Facade) URLFor(ctx context.Context, ref string) string {
	if IsExternalEmbed(ref) {
		return ref
	}
	name := Normalize(ref)

	switch f.backend {
	case BackendGCS:
		if f.gcs.PublicAccess() {
			return f.gcs.PublicURL(name)
		}
		url, err := f.gcs.SignedURL(ctx, name, SignedURLExpiry)
		if err != nil {
			return ProxyURL(name)
		}
		return url

	case BackendFTP:
		return ProxyURL(name)

	case BackendS3:
		if f.s3.Presign() {
			if url, err := f.s3.PresignURL(ctx, name, SignedURLExpiry); err == nil {
				return url
			}
		}
		return ProxyURL(name)

	default:
		return LocalUploadPrefix + name
	}
}

// ProxyURL builds the streaming-proxy path for a canonical filename.
func ProxyURL(filename string) string {
	return ProxyPathPrefix + filename
}
