package bundle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var modified = time.Date(2014, time.October, 19, 0, 38, 44, 0, time.UTC)

func TestZipRoundTrip(t *testing.T) {
	in := []File{
		{Name: "MessageID-1234.xml", Data: []byte("<Document/>")},
		{Name: "MessageID-1234.P1.ControlList.csv", Data: []byte("Name,Amount\n")},
	}

	data, err := Zip(in, modified)
	require.NoError(t, err)

	out, err := Unzip(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestZipIsReproducible(t *testing.T) {
	in := []File{{Name: "a.xml", Data: []byte("a")}}
	first, err := Zip(in, modified)
	require.NoError(t, err)
	second, err := Zip(in, modified)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestZipRejectsDuplicates(t *testing.T) {
	_, err := Zip([]File{{Name: "a.xml"}, {Name: "a.xml"}}, modified)
	assert.EqualError(t, err, "duplicate file name in archive: a.xml")
}

func TestUnzipInvalid(t *testing.T) {
	_, err := Unzip([]byte("not a zip"))
	assert.Error(t, err)
}
