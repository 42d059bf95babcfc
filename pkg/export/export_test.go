package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Name", "Career"},
		Rows: []map[string]string{
			{"Name": "María Pérez", "Career": "Sistemas"},
			{"Name": "Luis Mora"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(payload, utf8BOM))
	body := string(bytes.TrimPrefix(payload, utf8BOM))
	assert.Equal(t, "Name,Career\r\nMaría Pérez,Sistemas\r\nLuis Mora,\r\n", body)
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDataset(), "User Roster")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
	assert.Greater(t, len(payload), 500)
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "Empty")
	assert.Error(t, err)
}
