package stubapi

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FSStore keeps uploaded question assets on local disk and serves them
// back under /uploads/.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./uploads"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := filepath.Join(s.base, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/uploads/" + key, nil
}

func (s *FSStore) Handler() http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.base)))
}

// uploadFields maps multipart field names to the url keys the response
// carries. Order matters only for readability of the stored names.
var uploadFields = []struct {
	field  string
	urlKey string
}{
	{"question_image", "question_image_url"},
	{"question_pdf", "question_pdf_url"},
	{"solution_image", "solution_image_url"},
	{"solution_pdf", "solution_pdf_url"},
}

// UploadQuestionFiles handles POST /upload/question-files: any subset of
// the four known fields may be present, each stored under a fresh key.
func UploadQuestionFiles(store *FSStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondFail(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		out := map[string]string{}
		for _, uf := range uploadFields {
			f, hdr, err := r.FormFile(uf.field)
			if err != nil {
				continue
			}
			key := uuid.NewString() + "-" + filepath.Base(hdr.Filename)
			url, perr := store.Put(key, f)
			f.Close()
			if perr != nil {
				respondFail(w, http.StatusInternalServerError, "store file: "+perr.Error())
				return
			}
			out[uf.urlKey] = url
		}
		if len(out) == 0 {
			respondFail(w, http.StatusBadRequest, "no files provided")
			return
		}
		respondOK(w, http.StatusOK, out)
	}
}
