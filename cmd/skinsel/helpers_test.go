package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/skinsel/internal/history"
)

func TestParseDmenuSelection(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"regular-dark", "regular-dark"},
		{"  3 ", "3"},
		{"2 | active | regular-dark", "regular-dark"},
		{"4 | minimal", "minimal"},
		{"minimal\n", "minimal"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDmenuSelection(tt.in))
		})
	}
}

func TestMatchBackground(t *testing.T) {
	bgs := []string{"/t/alpha/bg/one.png", "/t/alpha/bg/Two.BMP"}

	got, ok := matchBackground(bgs, "one.png")
	require.True(t, ok)
	assert.Equal(t, "one.png", got)

	got, ok = matchBackground(bgs, "two")
	require.True(t, ok)
	assert.Equal(t, "Two.BMP", got)

	_, ok = matchBackground(bgs, "three")
	assert.False(t, ok)

	_, ok = matchBackground(nil, "one.png")
	assert.False(t, ok)
}

func TestFindEntry(t *testing.T) {
	entries := []history.Entry{
		{ID: "01HZ3X2J5YFMK2V3P4Q6R7S8T9", Theme: "beta"},
		{ID: "01HZ3X2J5YFMK2V3P4Q6R7S8T0", Theme: "alpha", Background: "one.png"},
	}

	e, ok := findEntry(entries, "01hz3x2j5yfmk2v3p4q6r7s8t0")
	require.True(t, ok)
	assert.Equal(t, "alpha", e.Theme)

	e, ok = findEntry(entries, "1")
	require.True(t, ok)
	assert.Equal(t, "beta", e.Theme)

	_, ok = findEntry(entries, "3")
	assert.False(t, ok)
	_, ok = findEntry(entries, "0")
	assert.False(t, ok)
	_, ok = findEntry(entries, "nope")
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "beta", describe(history.Entry{Theme: "beta"}))
	assert.Equal(t, "alpha (one.png)", describe(history.Entry{Theme: "alpha", Background: "one.png"}))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			ok, err := confirm(strings.NewReader(tt.input), &out, "Delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "Delete? [y/N]: ", out.String())
		})
	}
}

func TestReadLine(t *testing.T) {
	line, err := readLine(strings.NewReader("  2 | beta \nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "2 | beta", line)

	_, err = readLine(strings.NewReader(""))
	assert.Error(t, err)
}
