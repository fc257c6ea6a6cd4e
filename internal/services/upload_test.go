package services

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestQuestionFilesMultipartFieldsAndResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload/question-files", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeFail(w, http.StatusBadRequest, "bad multipart")
			return
		}
		f, hdr, err := r.FormFile("question_image")
		if err != nil {
			writeFail(w, http.StatusBadRequest, "question_image missing")
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		if hdr.Filename != "q.png" || string(body) != "png-bytes" {
			writeFail(w, http.StatusBadRequest, "wrong file content")
			return
		}
		if _, _, err := r.FormFile("solution_pdf"); err != nil {
			writeFail(w, http.StatusBadRequest, "solution_pdf missing")
			return
		}
		// Mixed casing on purpose: the backend has emitted both.
		writeOK(w, map[string]any{
			"question_image_url": "/uploads/q.png",
			"solutionPdfUrl":     "/uploads/s.pdf",
		})
	})
	svc := NewUploadService(newTestAPI(t, mux))

	res, err := svc.QuestionFiles(context.Background(), QuestionFiles{
		QuestionImage: &File{Name: "q.png", Content: strings.NewReader("png-bytes")},
		SolutionPDF:   &File{Name: "s.pdf", Content: strings.NewReader("%PDF-1.4")},
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.QuestionImageURL != "/uploads/q.png" || res.SolutionPDFURL != "/uploads/s.pdf" {
		t.Fatalf("result = %+v", res)
	}
}

func TestQuestionFilesRejectsEmptyInput(t *testing.T) {
	svc := NewUploadService(newTestAPI(t, http.NewServeMux()))
	if _, err := svc.QuestionFiles(context.Background(), QuestionFiles{}); err == nil {
		t.Fatalf("expected error for empty upload")
	}
}
