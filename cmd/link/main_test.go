package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvcrn/blockmason-link-go/link"
)

func TestParseInputs(t *testing.T) {
	inputs, err := parseInputs([]string{
		"amount=12345",
		"to=0x1010202030304040505000006060707080809090",
		"message=Hello, world!",
		"flag=true",
		"list=[1,2]",
		"empty=",
		"big=100000000000000000000001",
		"pair=1 2",
	})
	require.NoError(t, err)
	assert.Equal(t, link.Inputs{
		"amount":  json.Number("12345"),
		"to":      "0x1010202030304040505000006060707080809090",
		"message": "Hello, world!",
		"flag":    true,
		"list":    "[1,2]",
		"empty":   "",
		"big":     json.Number("100000000000000000000001"),
		"pair":    "1 2",
	}, inputs)

	_, err = parseInputs([]string{"noequals"})
	assert.Error(t, err)
}
