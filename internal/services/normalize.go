package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexID decodes an identifier that may arrive as a JSON string, a JSON
// number, or null. The canonical form is a string; null and absent both
// become "".
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// flexInt decodes a JSON number, a numeric string, or null.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("int: %w", err)
		}
		*f = flexInt(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexInt(int(v))
	return nil
}

// flexBool decodes a JSON bool, 0/1, or null.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "null", "":
		*f = false
	case "true", "1":
		*f = true
	case "false", "0":
		*f = false
	default:
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexBool(v)
	}
	return nil
}

// flexDifficulty accepts easy|medium|hard or the numeric form 1|2|3.
type flexDifficulty Difficulty

func (f *flexDifficulty) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "null", "":
		*f = ""
		return nil
	case "1":
		*f = flexDifficulty(DifficultyEasy)
		return nil
	case "2":
		*f = flexDifficulty(DifficultyMedium)
		return nil
	case "3":
		*f = flexDifficulty(DifficultyHard)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = flexDifficulty(strings.ToLower(s))
	return nil
}

// pick helpers: snake_case wins when both variants are present; absent fields
// fall back to the zero value. Presence of ints/bools is tracked through
// pointers since 0 and false are legitimate values.

func pickStr(snake, camel string) string {
	if snake != "" {
		return snake
	}
	return camel
}

func pickID(snake, camel flexID) string {
	if snake != "" {
		return string(snake)
	}
	return string(camel)
}

func pickInt(snake, camel *flexInt) int {
	if snake != nil {
		return int(*snake)
	}
	if camel != nil {
		return int(*camel)
	}
	return 0
}

func pickBool(snake, camel *flexBool) bool {
	if snake != nil {
		return bool(*snake)
	}
	if camel != nil {
		return bool(*camel)
	}
	return false
}

func pickInts(snake, camel []flexInt) []int {
	src := snake
	if src == nil {
		src = camel
	}
	out := make([]int, 0, len(src))
	for _, v := range src {
		out = append(out, int(v))
	}
	return out
}

func pickStrs(snake, camel []string) []string {
	if snake != nil {
		return snake
	}
	if camel != nil {
		return camel
	}
	return []string{}
}

// paginationPayload accepts every pagination spelling the backend has used.
type paginationPayload struct {
	CurrentPage    *flexInt  `json:"current_page"`
	CurrentPageAlt *flexInt  `json:"currentPage"`
	TotalPages     *flexInt  `json:"total_pages"`
	TotalPagesAlt  *flexInt  `json:"totalPages"`
	TotalItems     *flexInt  `json:"total_items"`
	TotalItemsAlt  *flexInt  `json:"totalItems"`
	TotalCount     *flexInt  `json:"total_count"`
	Total          *flexInt  `json:"total"`
	TotalQuestions *flexInt  `json:"totalQuestions"`
	TotalUsers     *flexInt  `json:"totalUsers"`
	Limit          *flexInt  `json:"limit"`
	PerPage        *flexInt  `json:"per_page"`
	PerPageAlt     *flexInt  `json:"perPage"`
	HasNext        *flexBool `json:"has_next"`
	HasNextAlt     *flexBool `json:"hasNext"`
	HasPrev        *flexBool `json:"has_prev"`
	HasPrevAlt     *flexBool `json:"hasPrev"`
}

func (p paginationPayload) normalize() Pagination {
	total := firstInt(p.TotalItems, p.TotalItemsAlt, p.TotalCount, p.Total, p.TotalQuestions, p.TotalUsers)
	pg := Pagination{
		CurrentPage: pickInt(p.CurrentPage, p.CurrentPageAlt),
		TotalPages:  pickInt(p.TotalPages, p.TotalPagesAlt),
		TotalItems:  total,
		Limit:       firstInt(p.Limit, p.PerPage, p.PerPageAlt),
		HasNext:     pickBool(p.HasNext, p.HasNextAlt),
		HasPrev:     pickBool(p.HasPrev, p.HasPrevAlt),
	}
	if pg.CurrentPage == 0 {
		pg.CurrentPage = 1
	}
	return pg
}

func firstInt(vals ...*flexInt) int {
	for _, v := range vals {
		if v != nil {
			return int(*v)
		}
	}
	return 0
}

// singlePage is the descriptor synthesized for endpoints that return a bare
// array instead of a pagination envelope.
func singlePage(n int) Pagination {
	return Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: n, Limit: n}
}

// splitList normalizes the two list wire shapes. data is either a bare JSON
// array, or an object holding the array under one of itemKeys plus an
// optional "pagination" object. The returned items are always a valid JSON
// array ("[]" for null/absent), and pagination is nil for the bare shape.
func splitList(data json.RawMessage, itemKeys ...string) (json.RawMessage, *Pagination, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return json.RawMessage("[]"), nil, nil
	}
	if data[0] == '[' {
		return data, nil, nil
	}
	if data[0] != '{' {
		return nil, nil, fmt.Errorf("unexpected list payload: %.40s", data)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, nil, err
	}
	items := json.RawMessage("[]")
	for _, k := range itemKeys {
		if v, ok := obj[k]; ok && string(bytes.TrimSpace(v)) != "null" {
			items = v
			break
		}
	}
	var pg *Pagination
	if raw, ok := obj["pagination"]; ok && string(bytes.TrimSpace(raw)) != "null" {
		var pp paginationPayload
		if err := json.Unmarshal(raw, &pp); err != nil {
			return nil, nil, fmt.Errorf("pagination: %w", err)
		}
		n := pp.normalize()
		pg = &n
	}
	return items, pg, nil
}
