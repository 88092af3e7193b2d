package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepositoryRef(t *testing.T) {
	expected := RepositoryRef{Owner: "golang", Name: "go"}

	// All three input forms map to the identical reference.
	for _, input := range []string{
		"https://github.com/golang/go",
		"github.com/golang/go",
		"golang/go",
	} {
		ref, err := ParseRepositoryRef(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, ref, input)
	}
}

func TestParseRepositoryRef_ExtraSegments(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "trailing slash", input: "https://github.com/golang/go/"},
		{name: "extra path segments", input: "github.com/golang/go/tree/master"},
		{name: "double slash", input: "golang//go"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := ParseRepositoryRef(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, RepositoryRef{Owner: "golang", Name: "go"}, ref)
		})
	}
}

func TestParseRepositoryRef_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"golang",
		"https://github.com/",
		"github.com/golang",
	} {
		_, err := ParseRepositoryRef(input)
		assert.ErrorIs(t, err, ErrInvalidRepositoryRef, input)
	}
}

func TestRepositoryRefString(t *testing.T) {
	assert.Equal(t, "golang/go", RepositoryRef{Owner: "golang", Name: "go"}.String())
}
