package util_test

import (
	"testing"

	"github.com/paypost/go-paypost/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type structUnderTest struct {
	A       *int
	B       any
	Skipped *string `wire:"-"`
	private *int
	Value   int
}

func TestIsStructInitialized(t *testing.T) {
	i := 1
	s := &structUnderTest{A: &i, B: "b"}
	require.NoError(t, util.IsStructInitialized(s))

	s.B = nil
	err := util.IsStructInitialized(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"B"`)

	var nilStruct *structUnderTest
	require.Error(t, util.IsStructInitialized(nilStruct))
	require.Error(t, util.IsStructInitialized(42))
}
