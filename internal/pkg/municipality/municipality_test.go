package municipality

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `ibge_code,name,state
3550308,São Paulo,SP
3509502,Campinas,sp

3548708,São Bernardo do Campo,SP
3550308,São Paulo,SP
3304557,Rio de Janeiro,RJ
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Municipality{Code: "3509502", Name: "Campinas", State: "SP"}, rows[1])
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("code,city\n1,a\n"))
	assert.ErrorContains(t, err, "unexpected csv header")

	_, err = ParseCSV(strings.NewReader("ibge_code,name,state\n1,Ok,SP\n2,,SP\n"))
	assert.ErrorContains(t, err, "line 3")

	_, err = ParseCSV(strings.NewReader("ibge_code,name,state\n1,Ok\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestJSONRoundTripFeedsCatalog(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rows))
	back, err := ParseJSON(&buf)
	require.NoError(t, err)

	c := NewCatalog(back)
	assert.Equal(t, []string{"RJ", "SP"}, c.States())
}

func TestCatalogSearch(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	c := NewCatalog(rows)

	names := func(ms []Municipality) []string {
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Campinas", "São Bernardo do Campo", "São Paulo"}, names(c.ByState("sp")))
	assert.Equal(t, []string{"São Bernardo do Campo", "São Paulo"}, names(c.Search("SP", "sao", 0)))
	assert.Equal(t, []string{"Campinas", "São Bernardo do Campo"}, names(c.Search("SP", "CAMP", 0)))
	assert.Equal(t, []string{"São Paulo"}, names(c.Search("SP", "paulo", 0)))
	assert.Len(t, c.Search("SP", "", 2), 2)
	assert.Empty(t, c.Search("MG", "sao", 0))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "sao joao del-rei", Fold("  São  João del-Rei "))
	assert.Equal(t, "goiania", Fold("GOIÂNIA"))
}
