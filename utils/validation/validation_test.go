package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title    string `json:"title" validate:"required,max=10"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestCheckValidStruct(t *testing.T) {
	errs := Check(sampleRequest{Title: "ok", Priority: "low"})
	assert.Empty(t, errs)
}

func TestCheckReportsJSONFieldNames(t *testing.T) {
	errs := Check(sampleRequest{})

	assert.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "title is required", errs[0].Message)
}

func TestCheckOneofMessage(t *testing.T) {
	errs := Check(sampleRequest{Title: "ok", Priority: "urgent!"})

	assert.Len(t, errs, 1)
	assert.Equal(t, "priority", errs[0].Field)
	assert.Equal(t, "priority must be one of: low, medium, high", errs[0].Message)
}

func TestCheckCollectsMultipleFailures(t *testing.T) {
	errs := Check(sampleRequest{Title: "this title is way too long", Email: "not-an-email"})

	assert.Len(t, errs, 2)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "email", errs[1].Field)
	assert.Equal(t, "Please provide a valid email address", errs[1].Message)
}
