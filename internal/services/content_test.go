package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prepstack/prepadmin/internal/rest"
)

func newTestAPI(t *testing.T, h http.Handler) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return rest.New(rest.Config{BaseURL: srv.URL})
}

func writeOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

func TestLoadAllToleratesOneFailedList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/exams", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []map[string]any{{"id": 1, "name": "LGS"}})
	})
	mux.HandleFunc("/admin/classes", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []map[string]any{{"id": "c1", "name": "8A", "min_class_level": 8, "max_class_level": 8}})
	})
	mux.HandleFunc("/admin/subjects", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusInternalServerError, "boom")
	})
	mux.HandleFunc("/admin/topics", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []map[string]any{{"id": "t1", "name": "Fractions", "subject_id": "s1", "class_id": "c1"}})
	})

	svc := NewContentService(newTestAPI(t, mux))
	b, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("one failed list must not fail the load: %v", err)
	}
	if len(b.Exams) != 1 || len(b.Classes) != 1 || len(b.Topics) != 1 {
		t.Fatalf("expected surviving lists populated: %+v", b)
	}
	if len(b.Subjects) != 0 {
		t.Fatalf("failed list must be empty, got %+v", b.Subjects)
	}
}

func TestLoadAllFailsWhenEverythingFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusBadGateway, "backend down")
	})
	svc := NewContentService(newTestAPI(t, mux))
	if _, err := svc.LoadAll(context.Background()); err == nil {
		t.Fatalf("expected error when all four lists fail")
	}
}

func TestCreateTopicOmitsEmptyParent(t *testing.T) {
	var got map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/topics", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeOK(w, map[string]any{"id": "t9", "name": got["name"], "subject_id": got["subjectId"], "class_id": got["classId"], "order_index": 0})
	})

	svc := NewContentService(newTestAPI(t, mux))
	topic, err := svc.CreateTopic(context.Background(), TopicDraft{
		Name:      "Fractions",
		SubjectID: "s1",
		ClassID:   "c1",
		ParentID:  "",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, present := got["parentId"]; present {
		t.Fatalf("empty parent must be omitted, payload = %v", got)
	}
	if got["subjectId"] != "s1" || got["classId"] != "c1" || got["name"] != "Fractions" {
		t.Fatalf("payload = %v", got)
	}
	if topic.ParentID != "" || topic.ParentName != "" {
		t.Fatalf("expected no parent on created topic: %+v", topic)
	}
}

func TestCreateClassRejectsInvertedLevels(t *testing.T) {
	svc := NewContentService(newTestAPI(t, http.NewServeMux()))
	_, err := svc.CreateClass(context.Background(), ClassDraft{
		Name:          "5-6",
		MinClassLevel: 6,
		MaxClassLevel: 5,
	})
	if err == nil {
		t.Fatalf("expected validation error for max < min")
	}
}

func TestCreateExamRoundTripKeepsDraftFields(t *testing.T) {
	// Echo server: stores the created exam and serves it back from the list.
	var stored map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/exams", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var draft map[string]any
			_ = json.NewDecoder(r.Body).Decode(&draft)
			stored = map[string]any{
				"id":                  101,
				"name":                draft["name"],
				"exam_date":           draft["examDate"],
				"target_class_levels": draft["targetClassLevels"],
				"prep_class_levels":   draft["prepClassLevels"],
				"description":         draft["description"],
				"created_at":          "2024-06-01T00:00:00Z",
			}
			writeOK(w, stored)
			return
		}
		writeOK(w, []map[string]any{stored})
	})

	svc := NewContentService(newTestAPI(t, mux))
	draft := ExamDraft{
		Name:              "LGS 2025",
		ExamDate:          "2025-06-15",
		TargetClassLevels: []int{8},
		PrepClassLevels:   []int{5, 6, 7},
		Description:       "Liseye geçiş",
	}
	if _, err := svc.CreateExam(context.Background(), draft); err != nil {
		t.Fatalf("create: %v", err)
	}
	exams, err := svc.Exams(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(exams) != 1 {
		t.Fatalf("expected 1 exam, got %d", len(exams))
	}
	e := exams[0]
	if e.Name != draft.Name || e.ExamDate != draft.ExamDate || e.Description != draft.Description {
		t.Fatalf("field loss on round trip: %+v", e)
	}
	if len(e.TargetClassLevels) != 1 || e.TargetClassLevels[0] != 8 {
		t.Fatalf("target levels lost: %+v", e.TargetClassLevels)
	}
	if len(e.PrepClassLevels) != 3 {
		t.Fatalf("prep levels lost: %+v", e.PrepClassLevels)
	}
	if e.ID != "101" {
		t.Fatalf("numeric id must normalize to string, got %q", e.ID)
	}
}
