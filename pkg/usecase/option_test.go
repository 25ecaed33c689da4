package usecase_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
	"github.com/secmon-lab/jsmconf/pkg/usecase"
)

func TestNestOptions(t *testing.T) {
	options := []*jira.CustomFieldOption{
		{ID: "1", Value: "EU"},
		{ID: "11", Value: "Paris", ParentID: "1"},
		{ID: "2", Value: "US"},
		{ID: "99", Value: "Orphan", ParentID: "404"},
		{ID: "12", Value: "Berlin", ParentID: "1"},
	}

	got := usecase.NestOptions(options)
	gt.Value(t, got).Equal([]model.RemoteOption{
		{
			ParentOptionValue: "EU",
			ParentOptionID:    "1",
			ChildOptions: []model.ChildOption{
				{Value: "Paris", ID: "11"},
				{Value: "Berlin", ID: "12"},
			},
		},
		{
			ParentOptionValue: "US",
			ParentOptionID:    "2",
			ChildOptions:      []model.ChildOption{},
		},
	})
}

func TestNestOptions_Empty(t *testing.T) {
	got := usecase.NestOptions(nil)
	gt.B(t, got != nil).True()
	gt.A(t, got).Length(0)

	data, err := json.Marshal(got)
	gt.NoError(t, err).Required()
	gt.S(t, string(data)).Equal("[]")
}

func TestCodeList(t *testing.T) {
	gt.S(t, usecase.CodeList([]string{"a_1", "b_1"})).Equal("`a_1` `b_1`")

	var many []string
	for i := range 25 {
		many = append(many, fmt.Sprintf("f_%d", i))
	}
	out := usecase.CodeList(many)
	gt.S(t, out).HasSuffix(" and 5 more")
	gt.Number(t, strings.Count(out, "`")).Equal(40)
}
