package forms

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "Fantasy", Clean("  Fantasy  "))
	assert.Equal(t, "a &amp; b", Clean("a & b"))
	assert.Equal(t, "&lt;script&gt;", Clean("<script>"))
	assert.Equal(t, "", Clean("   "))
}

func TestCleanAll_DropsEmptyEntries(t *testing.T) {
	got := CleanAll([]string{" one ", "", "  ", "two"})
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestParseOptionalDate_Empty(t *testing.T) {
	got, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("   ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseOptionalDate_Valid(t *testing.T) {
	got, err := ParseOptionalDate("1965-04-26")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(1965, 4, 26, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseOptionalDate_Invalid(t *testing.T) {
	_, err := ParseOptionalDate("26/04/1965")
	assert.Error(t, err)
}

func TestStringList_Scalar(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`"fantasy"`), &l))
	assert.Equal(t, StringList{"fantasy"}, l)
}

func TestStringList_Array(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &l))
	assert.Equal(t, StringList{"a", "b"}, l)
}

func TestStringList_Null(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	assert.Empty(t, l)
}

func TestStringList_RejectsObjects(t *testing.T) {
	var l StringList
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &l))
}
