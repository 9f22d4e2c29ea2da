// Package upload stores featured images on local disk with a two-phase
// write: files are staged first, the database row referencing them is
// committed, and only then is the stage promoted to its final name. On any
// failure the stage is discarded, so no orphaned file outlives the request.
package upload

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder

	"scienceheaven/internal/apperror"
)

const (
	// MaxSize is the maximum allowed upload size (5 MB).
	MaxSize = 5 << 20

	// maxImagePixels caps decoded geometry to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000

	// stagingDir holds files between Stage and Commit/Discard.
	stagingDir = ".staging"
)

// allowedTypes defines MIME types accepted for upload.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Store writes uploaded images under a base directory and serves them back
// via the /uploads static route.
type Store struct {
	dir string
}

// NewStore creates an upload store rooted at dir, creating the directory
// and its staging area if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, stagingDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory uploads are stored in.
func (s *Store) Dir() string { return s.dir }

// Staged is a file written to the staging area, awaiting Commit or Discard.
type Staged struct {
	store     *Store
	stagePath string
	finalName string
	done      bool
}

// Stage validates an uploaded file and writes it to the staging area.
// Returns nil when the request carries no file in the given field.
// Type and size violations reject with UploadRejected before anything is
// written, so a bad file never fails a mutation halfway.
func (s *Store) Stage(r *http.Request, field string) (*Staged, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.UploadRejected("Invalid file upload.")
	}
	defer file.Close()

	if header.Size > MaxSize {
		return nil, apperror.UploadRejected("File too large. Maximum size is 5 MB.")
	}

	// Detect content type by sniffing the first 512 bytes — the client's
	// declared type is not trusted.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	if !allowedTypes[contentType] {
		return nil, apperror.UploadRejected(fmt.Sprintf("File type %q is not allowed. Only JPG, PNG, and WebP are accepted.", contentType))
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek upload: %w", err)
	}

	if err := checkGeometry(file); err != nil {
		return nil, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek upload: %w", err)
	}

	// Stage under a random name; the final name is assigned now so the
	// database row can reference it before the rename happens.
	stagePath := filepath.Join(s.dir, stagingDir, uuid.NewString())
	finalName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(header.Filename))

	dst, err := os.Create(stagePath)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}
	if _, err := io.Copy(dst, io.LimitReader(file, MaxSize+1)); err != nil {
		dst.Close()
		os.Remove(stagePath)
		return nil, fmt.Errorf("write staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(stagePath)
		return nil, fmt.Errorf("close staged file: %w", err)
	}

	return &Staged{store: s, stagePath: stagePath, finalName: finalName}, nil
}

// checkGeometry decodes only the image header and rejects files whose pixel
// count would balloon in memory, plus anything that is not a decodable image.
func checkGeometry(file multipart.File) error {
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return apperror.UploadRejected("File is not a decodable image.")
	}
	if cfg.Width*cfg.Height > maxImagePixels {
		return apperror.UploadRejected("Image dimensions are too large.")
	}
	return nil
}

// Path returns the public URL path the committed file will be served at.
// Valid before Commit — handlers persist it in the content row first.
func (st *Staged) Path() string {
	return "/uploads/" + st.finalName
}

// Commit promotes the staged file to its final name. Call only after the
// database row referencing Path() has been written.
func (st *Staged) Commit() error {
	if st.done {
		return nil
	}
	st.done = true
	if err := os.Rename(st.stagePath, filepath.Join(st.store.dir, st.finalName)); err != nil {
		return fmt.Errorf("commit upload: %w", err)
	}
	return nil
}

// Discard removes the staged file. Safe to defer unconditionally — a no-op
// after Commit.
func (st *Staged) Discard() {
	if st == nil || st.done {
		return
	}
	st.done = true
	os.Remove(st.stagePath)
}

// sanitizeName strips path separators and whitespace from the original
// filename before it is embedded in the stored name.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "upload"
	}
	return name
}
