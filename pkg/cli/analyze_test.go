package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuoteJSON = `{
	"quote_ref": "devis-42",
	"enterprise": {
		"legal_id": "552 100 554",
		"years_in_business": 11,
		"annual_revenue": 250000,
		"has_decennial_insurance": true,
		"has_liability_insurance": true,
		"certifications": ["rge"],
		"reputation": 4.2
	},
	"pricing": {
		"total_amount": 16000,
		"by_category": {"electricite": 9000, "plomberie": 7000}
	},
	"lots": [
		{"category": "electricite"},
		{"category": "plomberie"}
	],
	"quality": {
		"description_length": 1600,
		"has_legal_mentions": true,
		"material_quality": "excellent"
	},
	"obligations": [
		{"code": "ELEC_NFC15100"}
	]
}`

const testQuoteYAML = `quoteRef: devis-43
enterprise:
  yearsInBusiness: 5
  annualRevenue: 90000
  hasDecennialInsurance: true
  reputation: 3.5
pricing:
  totalAmount: 8000
lots:
  - category: plomberie
quality:
  descriptionLength: 600
  hasLegalMentions: true
  materialQuality: good
`

func TestReadInputFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	require.NoError(t, os.WriteFile(path, []byte(testQuoteJSON), 0600))

	in, err := readInputFile(path)
	require.NoError(t, err)
	assert.Equal(t, "devis-42", in.QuoteRef)
	assert.Equal(t, 11, in.Enterprise.YearsInBusiness)
	assert.Len(t, in.Lots, 2)
	assert.NoError(t, in.Validate())
}

func TestReadInputFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testQuoteYAML), 0600))

	in, err := readInputFile(path)
	require.NoError(t, err)
	assert.Equal(t, "devis-43", in.QuoteRef)
	assert.Equal(t, 5, in.Enterprise.YearsInBusiness)
	assert.NoError(t, in.Validate())
}

func TestReadInputFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := readInputFile(path)
	assert.Error(t, err)

	_, err = readInputFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestListInputFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{}"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(""), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte(""), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))

	files, err := listInputFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.json"), files[1])
}
