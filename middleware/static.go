package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

// mimeTypes maps file extensions to the MIME type sent in the meta line.
// Unknown extensions are served as application/octet-stream.
var mimeTypes = map[string]string{
	".gmi":    "text/gemini",
	".gemini": "text/gemini",
	".txt":    "text/plain",
	".md":     "text/markdown",
	".png":    "image/png",
	".jpg":    "image/jpeg",
	".jpeg":   "image/jpeg",
	".gif":    "image/gif",
	".mp3":    "audio/mpeg",
	".ogg":    "audio/ogg",
	".pdf":    "application/pdf",
}

func mimeFor(name string) string {
	if mime, ok := mimeTypes[strings.ToLower(path.Ext(name))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// NewStaticHandler serves files from fsys using the request path. Requests
// for a directory serve its index.gmi. For security, paths that escape the
// root via ".." are rejected with 51 rather than resolved.
func NewStaticHandler(fsys fs.FS) app.Handler {
	return app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		cleaned := path.Clean(strings.TrimPrefix(r.Path, "/"))
		if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
			return response.NotFound("File not found"), nil
		}
		if cleaned == "" || cleaned == "." {
			cleaned = "index.gmi"
		}

		data, err := readFile(fsys, cleaned)
		if errors.Is(err, errIsDir) {
			data, err = readFile(fsys, path.Join(cleaned, "index.gmi"))
			cleaned = path.Join(cleaned, "index.gmi")
		}
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, errIsDir) {
				return response.NotFound("File not found"), nil
			}
			return nil, err
		}

		return response.Success(mimeFor(cleaned), data), nil
	})
}

var errIsDir = errors.New("is a directory")

func readFile(fsys fs.FS, name string) (io.Reader, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, errIsDir
	}

	// The file is read eagerly so it can be closed before the transport
	// streams the response.
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
