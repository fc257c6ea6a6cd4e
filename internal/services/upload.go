package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"

	"github.com/prepstack/prepadmin/internal/rest"
)

// UploadService pushes question/solution assets (images or PDFs) to the
// backend and returns the URLs to reference from a question draft.
type UploadService struct {
	api *rest.Client
}

func NewUploadService(api *rest.Client) *UploadService {
	return &UploadService{api: api}
}

// File is one upload part: the original filename plus its content.
type File struct {
	Name    string
	Content io.Reader
}

// QuestionFiles holds the optional parts of one upload call. At least one
// must be set.
type QuestionFiles struct {
	QuestionImage *File
	QuestionPDF   *File
	SolutionImage *File
	SolutionPDF   *File
}

type UploadResult struct {
	QuestionImageURL string
	QuestionPDFURL   string
	SolutionImageURL string
	SolutionPDFURL   string
}

type uploadPayload struct {
	QuestionImageURL    string `json:"question_image_url"`
	QuestionImageURLAlt string `json:"questionImageUrl"`
	QuestionPDFURL      string `json:"question_pdf_url"`
	QuestionPDFURLAlt   string `json:"questionPdfUrl"`
	SolutionImageURL    string `json:"solution_image_url"`
	SolutionImageURLAlt string `json:"solutionImageUrl"`
	SolutionPDFURL      string `json:"solution_pdf_url"`
	SolutionPDFURLAlt   string `json:"solutionPdfUrl"`
}

func (s *UploadService) QuestionFiles(ctx context.Context, files QuestionFiles) (UploadResult, error) {
	parts := []struct {
		field string
		file  *File
	}{
		{"question_image", files.QuestionImage},
		{"question_pdf", files.QuestionPDF},
		{"solution_image", files.SolutionImage},
		{"solution_pdf", files.SolutionPDF},
	}
	present := false
	for _, p := range parts {
		if p.file != nil {
			present = true
		}
	}
	if !present {
		return UploadResult{}, errors.New("no files to upload")
	}

	data, err := s.api.PostMultipart(ctx, "/upload/question-files", func(w *multipart.Writer) error {
		for _, p := range parts {
			if p.file == nil {
				continue
			}
			fw, err := w.CreateFormFile(p.field, p.file.Name)
			if err != nil {
				return err
			}
			if _, err := io.Copy(fw, p.file.Content); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return UploadResult{}, err
	}
	var p uploadPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return UploadResult{}, err
	}
	return UploadResult{
		QuestionImageURL: pickStr(p.QuestionImageURL, p.QuestionImageURLAlt),
		QuestionPDFURL:   pickStr(p.QuestionPDFURL, p.QuestionPDFURLAlt),
		SolutionImageURL: pickStr(p.SolutionImageURL, p.SolutionImageURLAlt),
		SolutionPDFURL:   pickStr(p.SolutionPDFURL, p.SolutionPDFURLAlt),
	}, nil
}
