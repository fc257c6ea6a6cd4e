package services

import (
	"encoding/json"
	"testing"
)

func TestTopicFieldCasingEquivalence(t *testing.T) {
	snake := []byte(`{
		"id": 12,
		"name": "Fractions",
		"subject_id": "s1",
		"class_id": 3,
		"parent_id": null,
		"order_index": 2,
		"is_active": true,
		"created_at": "2024-05-01T10:00:00Z"
	}`)
	camel := []byte(`{
		"id": "12",
		"name": "Fractions",
		"subjectId": "s1",
		"classId": "3",
		"orderIndex": 2,
		"isActive": true,
		"createdAt": "2024-05-01T10:00:00Z"
	}`)

	var a, b topicPayload
	if err := json.Unmarshal(snake, &a); err != nil {
		t.Fatalf("snake: %v", err)
	}
	if err := json.Unmarshal(camel, &b); err != nil {
		t.Fatalf("camel: %v", err)
	}
	ta, tb := a.normalize(), b.normalize()
	if ta != tb {
		t.Fatalf("snake and camel payloads disagree:\n%+v\n%+v", ta, tb)
	}
	if ta.ID != "12" || ta.SubjectID != "s1" || ta.ClassID != "3" {
		t.Fatalf("ids not canonical strings: %+v", ta)
	}
	if ta.ParentID != "" {
		t.Fatalf("null parent_id should normalize to empty, got %q", ta.ParentID)
	}
}

func TestSnakeWinsWhenBothCasingsPresent(t *testing.T) {
	raw := []byte(`{
		"id": 1,
		"name": "Algebra",
		"order_index": 0,
		"orderIndex": 7,
		"is_active": false,
		"isActive": true,
		"created_at": "2024-01-01",
		"createdAt": "2099-01-01"
	}`)
	var p subjectPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatal(err)
	}
	s := p.normalize()
	if s.OrderIndex != 0 {
		t.Fatalf("order_index=0 must win over orderIndex=7, got %d", s.OrderIndex)
	}
	if s.IsActive {
		t.Fatalf("is_active=false must win over isActive=true")
	}
	if s.CreatedAt != "2024-01-01" {
		t.Fatalf("created_at must win, got %q", s.CreatedAt)
	}
}

func TestAbsentFieldsFallBackToZeroValues(t *testing.T) {
	var p examPayload
	if err := json.Unmarshal([]byte(`{"id":"e1"}`), &p); err != nil {
		t.Fatal(err)
	}
	e := p.normalize()
	if e.Name != "" || e.ExamDate != "" || e.Description != "" || e.IsActive {
		t.Fatalf("expected zero values, got %+v", e)
	}
	if e.TargetClassLevels == nil || len(e.TargetClassLevels) != 0 {
		t.Fatalf("expected empty level list, got %#v", e.TargetClassLevels)
	}
}

func TestFlexIDAcceptsNumberStringAndNull(t *testing.T) {
	cases := map[string]string{
		`7`:       "7",
		`"7"`:     "7",
		`"c1f0a"`: "c1f0a",
		`null`:    "",
	}
	for in, want := range cases {
		var f flexID
		if err := json.Unmarshal([]byte(in), &f); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if string(f) != want {
			t.Fatalf("%s: got %q want %q", in, f, want)
		}
	}
}

func TestFlexIntAcceptsNumericString(t *testing.T) {
	var f flexInt
	if err := json.Unmarshal([]byte(`"42"`), &f); err != nil {
		t.Fatal(err)
	}
	if f != 42 {
		t.Fatalf("got %d", f)
	}
	if err := json.Unmarshal([]byte(`"x"`), &f); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestFlexDifficultyNumericForm(t *testing.T) {
	cases := map[string]Difficulty{
		`"easy"`:   DifficultyEasy,
		`"Medium"`: DifficultyMedium,
		`2`:        DifficultyMedium,
		`3`:        DifficultyHard,
	}
	for in, want := range cases {
		var f flexDifficulty
		if err := json.Unmarshal([]byte(in), &f); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if Difficulty(f) != want {
			t.Fatalf("%s: got %q want %q", in, f, want)
		}
	}
}

func TestSplitListBareArray(t *testing.T) {
	items, pg, err := splitList(json.RawMessage(`[{"id":1},{"id":2}]`), "questions")
	if err != nil {
		t.Fatal(err)
	}
	if pg != nil {
		t.Fatalf("bare array must not carry pagination")
	}
	var rows []map[string]any
	if err := json.Unmarshal(items, &rows); err != nil || len(rows) != 2 {
		t.Fatalf("items = %s err = %v", items, err)
	}
}

func TestSplitListPaginatedEnvelopeCamel(t *testing.T) {
	data := json.RawMessage(`{
		"questions": [{"id": 1}],
		"pagination": {"currentPage": 2, "totalPages": 9, "totalQuestions": 171, "limit": 20, "hasNext": true, "hasPrev": true}
	}`)
	items, pg, err := splitList(data, "questions", "items")
	if err != nil {
		t.Fatal(err)
	}
	if string(items) == "[]" {
		t.Fatalf("items not extracted")
	}
	if pg == nil {
		t.Fatalf("expected pagination")
	}
	want := Pagination{CurrentPage: 2, TotalPages: 9, TotalItems: 171, Limit: 20, HasNext: true, HasPrev: true}
	if *pg != want {
		t.Fatalf("pagination = %+v", *pg)
	}
}

func TestSplitListPaginatedEnvelopeSnake(t *testing.T) {
	data := json.RawMessage(`{
		"users": [],
		"pagination": {"current_page": 1, "total_pages": 1, "total_count": 3, "per_page": 25, "has_next": false}
	}`)
	_, pg, err := splitList(data, "users")
	if err != nil {
		t.Fatal(err)
	}
	want := Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 3, Limit: 25}
	if pg == nil || *pg != want {
		t.Fatalf("pagination = %+v", pg)
	}
}

func TestSplitListNullData(t *testing.T) {
	items, pg, err := splitList(nil, "profiles")
	if err != nil || pg != nil {
		t.Fatalf("err=%v pg=%v", err, pg)
	}
	var rows []any
	if err := json.Unmarshal(items, &rows); err != nil || len(rows) != 0 {
		t.Fatalf("expected empty array, got %s", items)
	}
}
