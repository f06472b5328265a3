package query_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/folio/pkg/query"
)

var byTitle = query.SortField{Field: "title"}

func newTestProjection() *query.ProjectionMap {
	return query.NewProjectionMap("", "documents", "d").
		Project("id", "id").
		Project("title", "title").
		Project("status", "status").
		Project("document_date", "document_date")
}

func TestBuilder_BuildCount_NoConditions(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection(), byTitle).BuildCount()

	want := "SELECT COUNT(*) FROM documents d"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilder_BuildPage_NoConditions(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection(), byTitle).BuildPage(1, 20)

	if !strings.Contains(sql, "SELECT d.id, d.title, d.status, d.document_date FROM documents d") {
		t.Errorf("BuildPage() missing select clause, got %q", sql)
	}
	if !strings.Contains(sql, "ORDER BY d.title ASC") {
		t.Errorf("BuildPage() missing order by, got %q", sql)
	}
	if !strings.HasSuffix(sql, "LIMIT 20 OFFSET 0") {
		t.Errorf("BuildPage() missing limit/offset, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("BuildPage() args = %v, want empty", args)
	}
}

func TestBuilder_BuildPage_Pagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     string
	}{
		{"first page", 1, 20, "LIMIT 20 OFFSET 0"},
		{"second page", 2, 20, "LIMIT 20 OFFSET 20"},
		{"third page", 3, 10, "LIMIT 10 OFFSET 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(newTestProjection(), byTitle).BuildPage(tt.page, tt.pageSize)
			if !strings.HasSuffix(sql, tt.want) {
				t.Errorf("BuildPage() = %q, want suffix %q", sql, tt.want)
			}
		})
	}
}

func TestBuilder_BuildLimit_NegativeOffset(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).BuildLimit(5, -10)
	if !strings.HasSuffix(sql, "LIMIT 5 OFFSET 0") {
		t.Errorf("BuildLimit() = %q, want clamped offset", sql)
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).BuildSingle("id", "abc")

	want := "SELECT d.id, d.title, d.status, d.document_date FROM documents d WHERE d.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("BuildSingle() args = %v, want [abc]", args)
	}
}

func TestBuilder_OrderByFields(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection(), byTitle).
		OrderByFields([]query.SortField{
			{Field: "status"},
			{Field: "document_date", Descending: true},
		}).
		Build()

	if !strings.HasSuffix(sql, "ORDER BY d.status ASC, d.document_date DESC") {
		t.Errorf("Build() = %q, want multi-field order", sql)
	}
}

func TestBuilder_OrderBy_UnknownFieldUsesDefault(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection(), byTitle).
		OrderBy("title; DROP TABLE documents", true).
		Build()

	if !strings.HasSuffix(sql, "ORDER BY d.title ASC") {
		t.Errorf("Build() = %q, want default order for unknown field", sql)
	}
}

func TestBuilder_NoDefaultSort(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).Build()
	if strings.Contains(sql, "ORDER BY") {
		t.Errorf("Build() = %q, want no order clause", sql)
	}
}

func TestBuilder_WhereEquals(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).
		WhereEquals("status", "pending").
		BuildCount()

	if !strings.Contains(sql, "WHERE d.status = $1") {
		t.Errorf("BuildCount() = %q, want equality condition", sql)
	}
	if len(args) != 1 || args[0] != "pending" {
		t.Errorf("args = %v, want [pending]", args)
	}
}

func TestBuilder_WhereEquals_NilIgnored(t *testing.T) {
	var status *string

	tests := []struct {
		name  string
		value any
	}{
		{"untyped nil", nil},
		{"typed nil pointer", status},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := query.NewBuilder(newTestProjection()).
				WhereEquals("status", tt.value).
				BuildCount()

			if strings.Contains(sql, "WHERE") {
				t.Errorf("BuildCount() = %q, want no condition", sql)
			}
			if len(args) != 0 {
				t.Errorf("args = %v, want empty", args)
			}
		})
	}
}

func TestBuilder_WhereEquals_DereferencesPointer(t *testing.T) {
	status := "archived"
	_, args := query.NewBuilder(newTestProjection()).
		WhereEquals("status", &status).
		BuildCount()

	if len(args) != 1 || args[0] != "archived" {
		t.Errorf("args = %v, want [archived]", args)
	}
}

func TestBuilder_WhereContains(t *testing.T) {
	search := "audit"
	sql, args := query.NewBuilder(newTestProjection()).
		WhereContains("title", &search).
		BuildCount()

	if !strings.Contains(sql, "LOWER(d.title) LIKE LOWER($1)") {
		t.Errorf("BuildCount() = %q, want portable contains", sql)
	}
	if len(args) != 1 || args[0] != "%audit%" {
		t.Errorf("args = %v, want [%%audit%%]", args)
	}
}

func TestBuilder_WhereContains_EmptyIgnored(t *testing.T) {
	empty := ""
	sql, _ := query.NewBuilder(newTestProjection()).
		WhereContains("title", nil).
		WhereContains("title", &empty).
		BuildCount()

	if strings.Contains(sql, "WHERE") {
		t.Errorf("BuildCount() = %q, want no condition", sql)
	}
}

func TestBuilder_WhereRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	sql, args := query.NewBuilder(newTestProjection()).
		WhereGTE("document_date", &from).
		WhereLTE("document_date", &to).
		BuildCount()

	if !strings.Contains(sql, "d.document_date >= $1 AND d.document_date <= $2") {
		t.Errorf("BuildCount() = %q, want range conditions", sql)
	}
	if len(args) != 2 || args[0] != from || args[1] != to {
		t.Errorf("args = %v, want [%v %v]", args, from, to)
	}
}

func TestBuilder_WhereIn(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).
		WhereIn("status", []any{"pending", "in_review"}).
		BuildCount()

	if !strings.Contains(sql, "d.status IN ($1, $2)") {
		t.Errorf("BuildCount() = %q, want IN condition", sql)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 values", args)
	}
}

func TestBuilder_WhereIn_EmptyIgnored(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).WhereIn("status", nil).BuildCount()
	if strings.Contains(sql, "WHERE") {
		t.Errorf("BuildCount() = %q, want no condition", sql)
	}
}

func TestBuilder_WhereSearch(t *testing.T) {
	search := "q1"
	sql, args := query.NewBuilder(newTestProjection()).
		WhereSearch(&search, "title", "status").
		BuildCount()

	want := "(LOWER(d.title) LIKE LOWER($1) OR LOWER(d.status) LIKE LOWER($2))"
	if !strings.Contains(sql, want) {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 values", args)
	}
}

func TestBuilder_MultipleConditions(t *testing.T) {
	search := "report"
	sql, args := query.NewBuilder(newTestProjection(), byTitle).
		WhereSearch(&search, "title").
		WhereEquals("status", "pending").
		WhereIn("id", []any{"a", "b"}).
		BuildPage(2, 10)

	for _, want := range []string{
		"LOWER(d.title) LIKE LOWER($1)",
		"d.status = $2",
		"d.id IN ($3, $4)",
		"LIMIT 10 OFFSET 10",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("BuildPage() = %q, missing %q", sql, want)
		}
	}
	if len(args) != 4 {
		t.Errorf("args = %v, want 4 values", args)
	}
}
