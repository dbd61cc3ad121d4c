package structdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/application-generator/internal/locate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"company": "Acme", "street": "1 Main", "zip": "00000", "city": "X"}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "address.json"), []byte(content), 0644))

	record, err := NewLoader("").Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"company": "Acme", "street": "1 Main", "zip": "00000", "city": "X"}, record.Fields)
	assert.Equal(t, filepath.Join(tmpDir, "address.json"), record.Source)
	assert.Equal(t, []string{"city", "company", "street", "zip"}, record.Keys())
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	content := "company: Acme\nstreet: 1 Main\nzip: 12345\ncity: X\nremote: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "address.yaml"), []byte(content), 0644))

	record, err := NewLoader(".yaml").Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "12345", record.Fields["zip"])
	assert.Equal(t, "true", record.Fields["remote"])
}

func TestParse_NumbersKeepLiteralText(t *testing.T) {
	record, err := Parse("profile.json", []byte(`{"zip": 1234.50, "phone_number": null}`))
	require.NoError(t, err)
	assert.Equal(t, "1234.50", record.Fields["zip"])
	assert.Equal(t, "", record.Fields["phone_number"])
}

func TestParse_YAMLKeepsLiteralText(t *testing.T) {
	tests := []struct {
		name string
		data string
		key  string
		want string
	}{
		{"leading zero zip", "zip: 01067\ncity: Dresden\n", "zip", "01067"},
		{"octal-looking zip", "zip: 0777\n", "zip", "0777"},
		{"trailing zero", "zip: 1.50\n", "zip", "1.50"},
		{"date", "founded: 2024-01-01\n", "founded", "2024-01-01"},
		{"quoted", "zip: '01067'\n", "zip", "01067"},
		{"null", "phone_number: ~\n", "phone_number", ""},
		{"empty value", "phone_number:\n", "phone_number", ""},
		{"quoted null stays text", "city: \"null\"\n", "city", "null"},
		{"anchor and alias", "street: &s 1 Main\ncompany_street: *s\n", "company_street", "1 Main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := Parse("address.yaml", []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.Fields[tt.key])
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
	}{
		{"invalid json", "a.json", `{"company": `},
		{"json array", "a.json", `["a", "b"]`},
		{"json null", "a.json", `null`},
		{"nested value", "a.json", `{"company": {"name": "Acme"}}`},
		{"trailing json content", "a.json", `{"zip": "1"} garbage`},
		{"second json value", "a.json", `{"zip": "1"} {"zip": "2"}`},
		{"invalid yaml", "a.yml", "company: [unclosed"},
		{"yaml sequence top level", "a.yaml", "- Acme\n- Globex\n"},
		{"yaml nested mapping", "a.yaml", "company:\n  name: Acme\n"},
		{"yaml list value", "a.yaml", "city: [Dresden, Leipzig]\n"},
		{"empty yaml", "a.yaml", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.path, []byte(tt.data))
			require.Error(t, err)
			var malformedErr *MalformedDataError
			assert.ErrorAs(t, err, &malformedErr)
			assert.Equal(t, tt.path, malformedErr.Path)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(".json").Load(t.TempDir())
	var missingErr *locate.MissingFileError
	assert.ErrorAs(t, err, &missingErr)
}

func TestRecord_Field(t *testing.T) {
	record := Record{Source: "acme/address.json", Fields: map[string]string{"company": "Acme"}}

	value, err := record.Field("company")
	require.NoError(t, err)
	assert.Equal(t, "Acme", value)

	_, err = record.Field("zip")
	var fieldErr *MissingFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "zip", fieldErr.Key)
	assert.Contains(t, err.Error(), `"zip"`)
	assert.Contains(t, err.Error(), "acme/address.json")
}
