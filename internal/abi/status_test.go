package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String_NamesKnownValues(t *testing.T) {
	assert.Equal(t, "OK", OK.String())
	assert.Equal(t, "Warning", Warning.String())
	assert.Equal(t, "Discard", Discard.String())
	assert.Equal(t, "Error", Error.String())
	assert.Equal(t, "Fatal", Fatal.String())
}

func TestStatus_String_FallsBackForUnknownValues(t *testing.T) {
	assert.Equal(t, "Status(99)", Status(99).String())
}

func TestStatus_Worse_OrdersFromBestToWorst(t *testing.T) {
	assert.True(t, Error.Worse(OK))
	assert.True(t, Fatal.Worse(Error))
	assert.False(t, OK.Worse(Warning))
	assert.False(t, OK.Worse(OK))
}
